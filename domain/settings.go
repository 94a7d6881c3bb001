package domain

import "strings"

type ThemeMode string

const (
	ThemeLight  ThemeMode = "LIGHT"
	ThemeDark   ThemeMode = "DARK"
	ThemeSystem ThemeMode = "SYSTEM"
)

// ParseThemeMode maps a stored or requested name onto a theme mode.
// The second return value is false for unknown names.
func ParseThemeMode(s string) (ThemeMode, bool) {
	switch ThemeMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	case ThemeSystem:
		return ThemeSystem, true
	}
	return ThemeSystem, false
}

type Settings struct {
	ThemeMode            ThemeMode `json:"theme_mode"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
}

func DefaultSettings() Settings {
	return Settings{ThemeMode: ThemeSystem, NotificationsEnabled: true}
}
