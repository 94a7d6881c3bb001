package repository

import (
	"context"
	"sync"

	"tds-assistant/domain"
)

// SettingsMemory keeps preferences for the lifetime of the process only.
type SettingsMemory struct {
	mu       sync.Mutex
	settings domain.Settings
}

func NewSettingsMemory() *SettingsMemory {
	return &SettingsMemory{settings: domain.DefaultSettings()}
}

func (m *SettingsMemory) Load(_ context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *SettingsMemory) SaveThemeMode(_ context.Context, mode domain.ThemeMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.ThemeMode = mode
	return nil
}

func (m *SettingsMemory) SaveNotificationsEnabled(_ context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.NotificationsEnabled = enabled
	return nil
}

func (m *SettingsMemory) Close() error { return nil }
