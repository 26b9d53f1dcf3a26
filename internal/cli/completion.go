package cli

import (
	"fmt"
	"io"
	"strings"
)

// programName is the command that completion scripts register for.
const programName = "shorcalc"

// FlagCompletion describes one flag for shell completion. Every generator
// reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // without "--"
	Short     string   // without "-"
	Help      string   // description
	Values    []string // suggested values; nil for booleans or free values
	ValueName string   // value label; empty for booleans
	IsFile    bool     // value is a file path
	IsAlgo    bool     // value is an order finder name
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Modulus N to factor", ValueName: "number"},
	{Long: "base", Short: "k", Help: "Base k of the factoring attempt", ValueName: "number"},
	{Long: "algo", Help: "Order finder", IsAlgo: true, ValueName: "finder"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "order", Help: "Only compute the multiplicative order"},
	{Long: "scan", Help: "Try every prime base below --limit"},
	{Long: "limit", Help: "Exclusive upper bound of scanned bases", Values: []string{"32", "128", "512", "1024"}, ValueName: "number"},
	{Long: "concurrency", Help: "Bases scanned in parallel", ValueName: "number"},
	{Long: "deck", Help: "Print the content of every slide"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL"},
	{Long: "tui", Help: "Start the scan dashboard"},
	{Long: "server", Help: "Start the HTTP API server"},
	{Long: "port", Help: "Listen port in server mode", Values: []string{"8080", "9090"}, ValueName: "port"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "details", Short: "d", Help: "Show timing and memory details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Write the result to a file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Print a completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script for shell to out.
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: "bash", "zsh", "fish" or "powershell" ("ps").
//   - finders: The registered order finder names.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, finders []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(finders)
	case "zsh":
		script = zshCompletion(finders)
	case "fish":
		script = fishCompletion(finders)
	case "powershell", "ps":
		script = powerShellCompletion(finders)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dashed spellings of f, short form first.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

func bashCompletion(finders []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${finders}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(flagNames(f), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts finders
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"
    finders="%[3]s all"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, programName, strings.Join(opts, " "), strings.Join(finders, " "), cases.String())
}

func zshCompletion(finders []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case f.IsAlgo:
			suffix = fmt.Sprintf(":%s:($finders)", f.ValueName)
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}

		switch {
		case f.Long != "" && f.Short != "":
			args = append(args, fmt.Sprintf("        '(-%[1]s --%[2]s)'{-%[1]s,--%[2]s}'[%[3]s]%[4]s'", f.Short, f.Long, f.Help, suffix))
		case f.Long != "":
			args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		default:
			args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, suffix))
		}
	}

	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place this file in a directory of $fpath

_%[1]s() {
    local -a finders
    finders=(%[2]s all)

    _arguments -s \
%[3]s
}

_%[1]s "$@"
`, programName, strings.Join(finders, " "), strings.Join(args, " \\\n"))
}

func fishCompletion(finders []string) string {
	lines := []string{
		"# Fish completion script for " + programName,
		"# Save as ~/.config/fish/completions/" + programName + ".fish",
		"",
		"complete -c " + programName + " -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c " + programName}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsAlgo:
			parts = append(parts, fmt.Sprintf("-xa '%s all'", strings.Join(finders, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(finders []string) string {
	quote := func(vals []string) string {
		q := make([]string, len(vals))
		for i, v := range vals {
			q[i] = "'" + v + "'"
		}
		return strings.Join(q, ", ")
	}

	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		var values string
		switch {
		case f.IsAlgo:
			values = "$shorcalcFinders"
		case len(f.Values) > 0 && !f.IsFile:
			values = "@(" + quote(f.Values) + ")"
		default:
			continue
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, values))
	}

	return fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

$shorcalcFinders = @(%[2]s)

Register-ArgumentCompleter -CommandName '%[1]s' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[3]s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%[4]s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, programName, quote(append(append([]string{}, finders...), "all")), strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
