package ports

import (
	"context"

	"github.com/taskdesk/client-go/internal/core/domain"
)

// ThemeApplier receives every resolved theme change. The render layer
// registers one to restyle its output (the analog of a document attribute).
type ThemeApplier interface {
	Apply(theme domain.Theme)
}

// ThemeApplierFunc adapts a function to the ThemeApplier interface.
type ThemeApplierFunc func(domain.Theme)

func (f ThemeApplierFunc) Apply(t domain.Theme) { f(t) }

// SystemThemeDetector exposes the OS-level colour preference. Current
// reports the preference and whether one could be determined. Watch emits
// a value on every change until ctx is cancelled; implementations that
// cannot observe changes return a nil channel.
type SystemThemeDetector interface {
	Current() (domain.Theme, bool)
	Watch(ctx context.Context) <-chan domain.Theme
}
