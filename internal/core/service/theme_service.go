package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

// ThemeService holds the UI theme preference, independent of the session.
// Resolution order at startup: explicit stored preference, then system
// preference, then the configured default. Explicit changes persist;
// system-driven changes apply only while no stored preference exists.
type ThemeService struct {
	store    ports.StateStore
	detector ports.SystemThemeDetector
	applier  ports.ThemeApplier
	log      zerolog.Logger

	mu      sync.Mutex
	current domain.Theme
}

// NewThemeService resolves the initial theme and notifies the applier.
// detector and applier may be nil.
func NewThemeService(store ports.StateStore, detector ports.SystemThemeDetector, applier ports.ThemeApplier, def domain.Theme, log zerolog.Logger) *ThemeService {
	t := &ThemeService{
		store:    store,
		detector: detector,
		applier:  applier,
		log:      log,
		current:  def,
	}
	if stored, ok := t.storedPreference(); ok {
		t.current = stored
	} else if detector != nil {
		if sys, ok := detector.Current(); ok {
			t.current = sys
		}
	}
	t.apply(t.current)
	return t
}

// Current returns the active theme.
func (t *ThemeService) Current() domain.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Toggle flips the theme, persists the new value and returns it.
func (t *ThemeService) Toggle() domain.Theme {
	t.mu.Lock()
	next := t.current.Opposite()
	t.mu.Unlock()
	t.Set(next)
	return next
}

// Set applies an explicit preference and persists it.
func (t *ThemeService) Set(theme domain.Theme) {
	t.mu.Lock()
	t.current = theme
	t.mu.Unlock()

	if err := t.store.Set(context.Background(), ports.KeyTheme, string(theme)); err != nil {
		t.log.Warn().Err(err).Msg("failed to persist theme")
	}
	t.apply(theme)
}

// Watch follows system preference changes until ctx is cancelled. A change
// is honoured only while the user has no explicit stored preference.
func (t *ThemeService) Watch(ctx context.Context) {
	if t.detector == nil {
		return
	}
	ch := t.detector.Watch(ctx)
	if ch == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sys, ok := <-ch:
				if !ok {
					return
				}
				if _, explicit := t.storedPreference(); explicit {
					continue
				}
				t.mu.Lock()
				t.current = sys
				t.mu.Unlock()
				t.apply(sys)
			}
		}
	}()
}

func (t *ThemeService) storedPreference() (domain.Theme, bool) {
	val, err := t.store.Get(context.Background(), ports.KeyTheme)
	if err != nil || !domain.ValidTheme(val) {
		return "", false
	}
	return domain.Theme(val), true
}

func (t *ThemeService) apply(theme domain.Theme) {
	if t.applier != nil {
		t.applier.Apply(theme)
	}
}
