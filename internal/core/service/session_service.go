package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
	"github.com/taskdesk/client-go/internal/metrics"
)

// SessionService owns the process-wide authentication state: current user,
// authenticated flag and the startup loading flag. All transitions happen
// under one mutex, so tokens and the current user are always set or
// cleared together. Construct it once at startup and inject it; nothing
// else may read or write the persisted tokens.
type SessionService struct {
	store ports.StateStore
	auth  ports.AuthAPI
	log   zerolog.Logger

	mu      sync.Mutex
	user    *domain.User
	loading bool
}

// NewSessionService returns a session in the loading state. Call CheckAuth
// once immediately after construction to resolve it.
func NewSessionService(store ports.StateStore, auth ports.AuthAPI, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:   store,
		auth:    auth,
		log:     log,
		loading: true,
	}
}

// CheckAuth recovers a persisted session. With no stored access token it
// settles on unauthenticated without any network call. With one, the token
// is validated against the "current user" endpoint; any failure purges
// both tokens and falls back to unauthenticated silently. Errors are never
// surfaced to the user here.
func (s *SessionService) CheckAuth(ctx context.Context) {
	token, err := s.store.Get(ctx, ports.KeyAccessToken)
	if err != nil || token == "" {
		metrics.SessionRecoveriesTotal.WithLabelValues("no_token").Inc()
		s.settle(nil)
		return
	}

	user, err := s.auth.GetCurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session recovery rejected, clearing tokens")
		metrics.SessionRecoveriesTotal.WithLabelValues("rejected").Inc()
		s.clearTokens(ctx)
		s.settle(nil)
		return
	}

	metrics.SessionRecoveriesTotal.WithLabelValues("recovered").Inc()
	s.settle(user)
}

// Login authenticates and, on success, persists both tokens and the user
// in one step. There is no observable state where the tokens exist but
// the user is nil, or the reverse. On failure any stored tokens are
// cleared and the error (typically *rest.CredentialError) is returned
// unchanged for the caller to render.
func (s *SessionService) Login(ctx context.Context, data ports.LoginData) error {
	resp, err := s.auth.Login(ctx, data)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.clearTokens(ctx)
		s.settle(nil)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, ports.KeyAccessToken, resp.Access); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist access token")
	}
	if err := s.store.Set(ctx, ports.KeyRefreshToken, resp.Refresh); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refresh token")
	}
	s.user = resp.User
	s.loading = false
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return nil
}

// Logout clears tokens and state unconditionally. It never calls the
// server, so it cannot fail or block on the network.
func (s *SessionService) Logout() {
	s.clearTokens(context.Background())
	s.settle(nil)
}

// CurrentUser returns the authenticated user, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated is true iff a current user is set.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsLoading is true only before the initial CheckAuth resolves.
func (s *SessionService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionService) settle(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loading = false
}

func (s *SessionService) clearTokens(ctx context.Context) {
	if err := s.store.Remove(ctx, ports.KeyAccessToken); err != nil {
		s.log.Warn().Err(err).Msg("failed to remove access token")
	}
	if err := s.store.Remove(ctx, ports.KeyRefreshToken); err != nil {
		s.log.Warn().Err(err).Msg("failed to remove refresh token")
	}
}
