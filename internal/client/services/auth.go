// Package services contains the client's application services. This file
// defines AuthService: the startup session check and the login, register
// and logout operations, the only code allowed to write the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/session"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// ErrNotAuthenticated is returned by operations that need a logged-in user
// when the session has none. No request is sent in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService owns the session Writer.
//
//   - Init: one-time "who am I" check at startup.
//   - Refresh: re-run the check after the profile changed.
//   - Login / Register / Logout: account operations.
//   - CurrentUser: synchronous read, no network.
type AuthService struct {
	client      client.Client
	store       *session.Store
	writer      *session.Writer
	interactive bool
	logger      logging.Logger

	initOnce sync.Once
}

// NewAuthService binds the service to a session. interactive=false is for
// runs where no session can exist (scripts, piped input): Init then skips
// the backend entirely.
func NewAuthService(c client.Client, store *session.Store, w *session.Writer, interactive bool, logger logging.Logger) *AuthService {
	return &AuthService{
		client:      c,
		store:       store,
		writer:      w,
		interactive: interactive,
		logger:      logger.With("module", "auth_service"),
	}
}

// Init determines the existing session, if any, and marks the session check
// complete. Only the first call does anything. Failures are never returned:
// an unreachable backend or a 401 both mean "no session".
func (a *AuthService) Init(ctx context.Context) {
	a.initOnce.Do(func() {
		if !a.interactive {
			a.logger.Debug(ctx, "non-interactive run, skipping session check")
			a.writer.MarkCheckComplete()
			return
		}
		a.Refresh(ctx)
	})
}

// Refresh asks the backend who is logged in and stores the answer. Any
// failure clears the user. The session check is marked complete afterwards
// (a no-op when it already is).
func (a *AuthService) Refresh(ctx context.Context) {
	u, err := a.client.Me(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			a.logger.Warn(ctx, "session check failed", "error", err)
		}
		a.writer.SetUser(nil)
	} else {
		a.writer.SetUser(u)
	}
	a.writer.MarkCheckComplete()
}

// Login authenticates and stores the returned profile. On failure the
// session is left exactly as it was.
func (a *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	resp, err := a.client.Login(ctx, req)
	if err != nil {
		a.logger.Info(ctx, "login failed", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	a.writer.SetUser(resp.User)
	a.writer.MarkCheckComplete()
	a.logger.Info(ctx, "logged in", "user_id", resp.User.ID)
	return resp.User.Clone(), nil
}

// Register creates an account. It never logs the new user in: on success the
// session user is cleared and the caller is expected to send the user to the
// login page.
func (a *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		a.logger.Info(ctx, "registration failed", "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	a.writer.SetUser(nil)
	return resp.User.Clone(), nil
}

// Logout ends the session on the backend. The local user is cleared whether
// or not the request succeeds; the request error is still returned.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.writer.SetUser(nil)
	if err != nil {
		a.logger.Warn(ctx, "logout request failed, session cleared locally", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ClearSession drops the local user without contacting the backend, for
// when the backend session is already gone (account deleted).
func (a *AuthService) ClearSession() {
	a.writer.SetUser(nil)
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (a *AuthService) CurrentUser() *models.User {
	return a.store.User()
}
