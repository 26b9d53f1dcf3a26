package ui

// Accessors for the active theme's escape sequences.

func ColorPrimary() string   { return GetCurrentTheme().Primary }
func ColorSecondary() string { return GetCurrentTheme().Secondary }
func ColorSuccess() string   { return GetCurrentTheme().Success }
func ColorWarning() string   { return GetCurrentTheme().Warning }
func ColorError() string     { return GetCurrentTheme().Error }
func ColorInfo() string      { return GetCurrentTheme().Info }
func ColorFactor() string    { return GetCurrentTheme().Factor }
func ColorEligible() string  { return GetCurrentTheme().Eligible }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// ThemeColors adapts the active theme to apperrors.ColorProvider.
type ThemeColors struct{}

func (ThemeColors) Red() string    { return ColorError() }
func (ThemeColors) Yellow() string { return ColorWarning() }
func (ThemeColors) Reset() string  { return ColorReset() }
