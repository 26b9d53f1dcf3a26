package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	finders := []string{"bigint", "carmichael", "naive"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _shorcalc_completions shorcalc", `finders="bigint carmichael naive all"`, "--scan", "-o|--output)"}},
		{"zsh", []string{"#compdef shorcalc", "finders=(bigint carmichael naive all)", "'--algo[Order finder]:finder:($finders)'"}},
		{"fish", []string{"complete -c shorcalc -f", "complete -c shorcalc -l algo -d 'Order finder' -xa 'bigint carmichael naive all'", "-s o -l output -d 'Write the result to a file' -rF"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'shorcalc'", "$shorcalcFinders = @('bigint', 'carmichael', 'naive', 'all')", "'--completion'"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, finders); err != nil {
				t.Fatalf("GenerateCompletion(%q) error: %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistryHasEveryMode(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		seen[f.Long] = true
	}
	for _, mode := range []string{"order", "scan", "deck", "interactive", "tui", "server", "completion"} {
		if !seen[mode] {
			t.Errorf("flag --%s missing from completion registry", mode)
		}
	}
}
