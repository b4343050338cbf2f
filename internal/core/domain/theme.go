package domain

// Theme is the UI colour preference, persisted independently of the session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme reports whether s is a recognised stored theme value.
func ValidTheme(s string) bool {
	return s == string(ThemeLight) || s == string(ThemeDark)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
