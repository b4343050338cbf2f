package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

type stubDetector struct {
	theme domain.Theme
	known bool
	ch    chan domain.Theme
}

func (d *stubDetector) Current() (domain.Theme, bool) {
	return d.theme, d.known
}

func (d *stubDetector) Watch(_ context.Context) <-chan domain.Theme {
	return d.ch
}

type recordingApplier struct {
	mu      sync.Mutex
	applied []domain.Theme
}

func (r *recordingApplier) Apply(t domain.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, t)
}

func (r *recordingApplier) last() domain.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.applied) == 0 {
		return ""
	}
	return r.applied[len(r.applied)-1]
}

func TestThemeService_DefaultWhenNothingStored(t *testing.T) {
	applier := &recordingApplier{}
	svc := NewThemeService(newStubStore(), nil, applier, domain.ThemeLight, zerolog.Nop())

	if got := svc.Current(); got != domain.ThemeLight {
		t.Fatalf("expected light, got %s", got)
	}
	if applier.last() != domain.ThemeLight {
		t.Fatalf("expected initial theme applied")
	}
}

func TestThemeService_StoredPreferenceWins(t *testing.T) {
	store := newStubStore()
	store.values[ports.KeyTheme] = "dark"
	detector := &stubDetector{theme: domain.ThemeLight, known: true}

	svc := NewThemeService(store, detector, nil, domain.ThemeLight, zerolog.Nop())

	if got := svc.Current(); got != domain.ThemeDark {
		t.Fatalf("stored preference must beat the system one, got %s", got)
	}
}

func TestThemeService_SystemPreferenceBeatsDefault(t *testing.T) {
	detector := &stubDetector{theme: domain.ThemeDark, known: true}

	svc := NewThemeService(newStubStore(), detector, nil, domain.ThemeLight, zerolog.Nop())

	if got := svc.Current(); got != domain.ThemeDark {
		t.Fatalf("expected system dark, got %s", got)
	}
}

func TestThemeService_InvalidStoredValueIgnored(t *testing.T) {
	store := newStubStore()
	store.values[ports.KeyTheme] = "solarized"

	svc := NewThemeService(store, nil, nil, domain.ThemeLight, zerolog.Nop())

	if got := svc.Current(); got != domain.ThemeLight {
		t.Fatalf("invalid stored theme must fall back to default, got %s", got)
	}
}

func TestThemeService_ResolutionDoesNotPersist(t *testing.T) {
	store := newStubStore()
	detector := &stubDetector{theme: domain.ThemeDark, known: true}

	NewThemeService(store, detector, nil, domain.ThemeLight, zerolog.Nop())

	if _, ok := store.values[ports.KeyTheme]; ok {
		t.Fatalf("startup resolution must not write a preference")
	}
}

func TestThemeService_ToggleRoundTrip(t *testing.T) {
	store := newStubStore()
	applier := &recordingApplier{}
	svc := NewThemeService(store, nil, applier, domain.ThemeLight, zerolog.Nop())

	if got := svc.Toggle(); got != domain.ThemeDark {
		t.Fatalf("expected dark after first toggle, got %s", got)
	}
	if store.values[ports.KeyTheme] != "dark" {
		t.Fatalf("expected dark persisted, got %q", store.values[ports.KeyTheme])
	}
	if applier.last() != domain.ThemeDark {
		t.Fatalf("expected dark applied")
	}

	if got := svc.Toggle(); got != domain.ThemeLight {
		t.Fatalf("expected light after second toggle, got %s", got)
	}
	if store.values[ports.KeyTheme] != "light" {
		t.Fatalf("expected light persisted, got %q", store.values[ports.KeyTheme])
	}
}

func TestThemeService_WatchHonoursSystemOnlyWithoutPreference(t *testing.T) {
	store := newStubStore()
	ch := make(chan domain.Theme)
	detector := &stubDetector{ch: ch}
	applier := &recordingApplier{}
	svc := NewThemeService(store, detector, applier, domain.ThemeLight, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Watch(ctx)

	ch <- domain.ThemeDark
	waitFor(t, func() bool { return svc.Current() == domain.ThemeDark })

	// An explicit choice pins the theme; later system changes are ignored.
	svc.Set(domain.ThemeLight)
	ch <- domain.ThemeDark
	ch <- domain.ThemeDark

	if got := svc.Current(); got != domain.ThemeLight {
		t.Fatalf("system change must not override explicit preference, got %s", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never met")
}
