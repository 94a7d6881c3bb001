package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/repository"
)

// SettingsService fronts a SettingsRepository and notifies watchers after
// every successful write.
type SettingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger

	// writeMu orders save, reload and broadcast so watchers end on the stored value.
	writeMu sync.Mutex

	mu       sync.Mutex
	watchers map[chan domain.Settings]struct{}
}

func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		logger:   logger,
		watchers: make(map[chan domain.Settings]struct{}),
	}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Load(ctx)
}

func (s *SettingsService) ThemeMode(ctx context.Context) (domain.ThemeMode, error) {
	settings, err := s.repo.Load(ctx)
	return settings.ThemeMode, err
}

func (s *SettingsService) NotificationsEnabled(ctx context.Context) (bool, error) {
	settings, err := s.repo.Load(ctx)
	return settings.NotificationsEnabled, err
}

func (s *SettingsService) SetThemeMode(ctx context.Context, mode domain.ThemeMode) error {
	return s.Update(ctx, &mode, nil)
}

func (s *SettingsService) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return s.Update(ctx, nil, &enabled)
}

// Update changes whichever fields are non-nil. Both are validated before
// anything is written. If the notifications write fails after the theme was
// saved, the error wraps ErrPartialUpdate.
func (s *SettingsService) Update(ctx context.Context, mode *domain.ThemeMode, enabled *bool) error {
	var theme domain.ThemeMode
	if mode != nil {
		parsed, ok := domain.ParseThemeMode(string(*mode))
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidThemeMode, *mode)
		}
		theme = parsed
	}
	if mode == nil && enabled == nil {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if mode != nil {
		if err := s.repo.SaveThemeMode(ctx, theme); err != nil {
			return fmt.Errorf("save theme mode: %w", err)
		}
	}
	if enabled != nil {
		if err := s.repo.SaveNotificationsEnabled(ctx, *enabled); err != nil {
			if mode != nil {
				s.publish(ctx)
				return fmt.Errorf("%w: theme mode saved, notifications flag not: %w", ErrPartialUpdate, err)
			}
			return fmt.Errorf("save notifications flag: %w", err)
		}
	}
	s.publish(ctx)
	return nil
}

// Watch yields the current settings, then every change, until ctx is done.
// A slow reader only sees the latest value.
func (s *SettingsService) Watch(ctx context.Context) (<-chan domain.Settings, error) {
	s.writeMu.Lock()
	current, err := s.repo.Load(ctx)
	if err != nil {
		s.writeMu.Unlock()
		return nil, err
	}

	ch := make(chan domain.Settings, 1)
	ch <- current

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	s.writeMu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

// WatchThemeMode is Watch narrowed to the theme, skipping repeats.
func (s *SettingsService) WatchThemeMode(ctx context.Context) (<-chan domain.ThemeMode, error) {
	src, err := s.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan domain.ThemeMode, 1)
	go func() {
		defer close(out)
		var last domain.ThemeMode
		for settings := range src {
			if settings.ThemeMode == last {
				continue
			}
			last = settings.ThemeMode
			select {
			case out <- last:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// WatchNotifications is Watch narrowed to the notifications flag, skipping repeats.
func (s *SettingsService) WatchNotifications(ctx context.Context) (<-chan bool, error) {
	src, err := s.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		first := true
		var last bool
		for settings := range src {
			if !first && settings.NotificationsEnabled == last {
				continue
			}
			first = false
			last = settings.NotificationsEnabled
			select {
			case out <- last:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// publish must be called with writeMu held.
func (s *SettingsService) publish(ctx context.Context) {
	current, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("settings saved but reload failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		// drop the stale value so the newest one always fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- current:
		default:
		}
	}
}
