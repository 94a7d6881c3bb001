package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"tds-assistant/domain"
)

// SettingsRedis keeps both preferences as fields of one redis hash.
type SettingsRedis struct {
	client *redis.Client
	key    string
}

func NewSettingsRedis(client *redis.Client, key string) *SettingsRedis {
	return &SettingsRedis{client: client, key: key}
}

func (r *SettingsRedis) Load(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	vals, err := r.client.HMGet(ctx, r.key, KeyThemeMode, KeyNotificationsEnabled).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if len(vals) > 0 {
		if theme, ok := vals[0].(string); ok {
			settings.ThemeMode, _ = domain.ParseThemeMode(theme)
		}
	}
	if len(vals) > 1 {
		if notif, ok := vals[1].(string); ok {
			if enabled, perr := strconv.ParseBool(notif); perr == nil {
				settings.NotificationsEnabled = enabled
			}
		}
	}
	return settings, nil
}

func (r *SettingsRedis) SaveThemeMode(ctx context.Context, mode domain.ThemeMode) error {
	return r.client.HSet(ctx, r.key, KeyThemeMode, string(mode)).Err()
}

func (r *SettingsRedis) SaveNotificationsEnabled(ctx context.Context, enabled bool) error {
	return r.client.HSet(ctx, r.key, KeyNotificationsEnabled, strconv.FormatBool(enabled)).Err()
}

// Close is a no-op; the shared client is closed by its owner.
func (r *SettingsRedis) Close() error { return nil }
