package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tds-assistant/domain"
)

// SettingsSQLite stores preferences as rows of a key/value table.
type SettingsSQLite struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSettingsSQLite opens (or creates) the database file and runs migrations.
func NewSettingsSQLite(dbPath string, logger *zap.Logger) (*SettingsSQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s, err := NewSettingsSQLiteDB(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite settings store opened", zap.String("path", dbPath))
	return s, nil
}

// NewSettingsSQLiteDB wraps an already opened database.
func NewSettingsSQLiteDB(db *sql.DB, logger *zap.Logger) (*SettingsSQLite, error) {
	s := &SettingsSQLite{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SettingsSQLite) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
	)`)
	return err
}

func (s *SettingsSQLite) Load(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	theme, err := s.get(ctx, KeyThemeMode)
	if err != nil {
		return settings, err
	}
	if theme != "" {
		settings.ThemeMode, _ = domain.ParseThemeMode(theme)
	}

	notif, err := s.get(ctx, KeyNotificationsEnabled)
	if err != nil {
		return settings, err
	}
	if notif != "" {
		enabled, perr := strconv.ParseBool(notif)
		if perr != nil {
			s.logger.Warn("ignoring malformed notifications flag", zap.String("value", notif))
		} else {
			settings.NotificationsEnabled = enabled
		}
	}

	return settings, nil
}

func (s *SettingsSQLite) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func (s *SettingsSQLite) put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SettingsSQLite) SaveThemeMode(ctx context.Context, mode domain.ThemeMode) error {
	return s.put(ctx, KeyThemeMode, string(mode))
}

func (s *SettingsSQLite) SaveNotificationsEnabled(ctx context.Context, enabled bool) error {
	return s.put(ctx, KeyNotificationsEnabled, strconv.FormatBool(enabled))
}

func (s *SettingsSQLite) Close() error {
	return s.db.Close()
}
