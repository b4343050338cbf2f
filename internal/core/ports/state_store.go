package ports

import "context"

// Storage keys shared by every StateStore backend. The token pair and the
// theme are the only values this layer ever persists.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyTheme        = "theme"
)

// StateStore is durable key-value persistence for the session tokens and
// the theme preference. Implementations must return domain.ErrNotFound for
// absent keys; any other failure is treated by callers as absence too, so
// a broken store degrades to the unauthenticated/default path.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
