package repository

import (
	"context"

	"tds-assistant/domain"
)

const (
	KeyThemeMode            = "theme_mode"
	KeyNotificationsEnabled = "notifications_enabled"
)

// SettingsRepository persists the user preferences. Load returns the defaults for
// keys that were never written.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	SaveThemeMode(ctx context.Context, mode domain.ThemeMode) error
	SaveNotificationsEnabled(ctx context.Context, enabled bool) error
	Close() error
}
