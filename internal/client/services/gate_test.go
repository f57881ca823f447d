package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/client/session"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gate wires an AuthService and a Router to one session.
func gate(t *testing.T, fc *fakeClient) (*AuthService, *router.Router, *session.Store) {
	t.Helper()
	store, w := session.New()
	a := NewAuthService(fc, store, w, true, logging.Discard())
	r := router.New(store, router.DefaultRoutes(), logging.Discard())
	return a, r, store
}

func TestGate_StartupWithExistingSession(t *testing.T) {
	fc := &fakeClient{MeUser: &models.User{ID: "1", Email: "a@b.com", Name: "A"}}
	a, r, store := gate(t, fc)
	ctx := context.Background()

	a.Init(ctx)
	require.True(t, store.CheckComplete())
	require.True(t, store.IsAuthenticated())

	res, err := r.Navigate(ctx, "/reservations")
	require.NoError(t, err)
	assert.False(t, res.Redirected)
	assert.Equal(t, "/reservations", res.Final)

	res, err = r.Navigate(ctx, "/auth/login")
	require.NoError(t, err)
	assert.True(t, res.Redirected)
	assert.Equal(t, "/reservations", res.Final)
}

func TestGate_FailedLoginStillRedirects(t *testing.T) {
	fc := &fakeClient{
		MeErr:    unauthorized(),
		LoginErr: &client.APIError{Status: 401, Message: "Invalid credentials", Err: client.ErrUnauthorized},
	}
	a, r, store := gate(t, fc)
	ctx := context.Background()
	a.Init(ctx)

	_, err := a.Login(ctx, models.LoginRequest{Email: "bad", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Nil(t, store.User())

	res, err := r.Navigate(ctx, "/reservations")
	require.NoError(t, err)
	assert.Equal(t, router.LoginPath, res.Final)
}

func TestGate_LoginThenProtectedAllowed(t *testing.T) {
	fc := &fakeClient{MeErr: unauthorized(), LoginResp: &models.AuthResponse{User: alice}}
	a, r, _ := gate(t, fc)
	ctx := context.Background()
	a.Init(ctx)

	_, err := a.Login(ctx, models.LoginRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)

	res, err := r.Navigate(ctx, "/vehicles")
	require.NoError(t, err)
	assert.False(t, res.Redirected)
	assert.Equal(t, router.PageVehicles, res.Page)
}

func TestGate_LogoutFailureStillLogsOut(t *testing.T) {
	fc := &fakeClient{
		MeUser:    &models.User{ID: "1", Email: "a@b.com", Name: "A"},
		LogoutErr: &client.APIError{Status: 500, Message: "Internal Server Error", Err: client.ErrUnavailable},
	}
	a, r, store := gate(t, fc)
	ctx := context.Background()
	a.Init(ctx)

	err := a.Logout(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, store.User())

	res, err := r.Navigate(ctx, "/reservations")
	require.NoError(t, err)
	assert.Equal(t, router.LoginPath, res.Final)
}

func TestGate_NavigationBeforeInitWaits(t *testing.T) {
	fc := &fakeClient{MeUser: alice}
	a, r, _ := gate(t, fc)
	ctx := context.Background()

	done := make(chan router.Result, 1)
	go func() {
		res, err := r.Navigate(ctx, "/auth/login")
		if err == nil {
			done <- res
		}
		close(done)
	}()

	a.Init(ctx)
	res, ok := <-done
	require.True(t, ok)
	// With the session known, login is not reachable.
	assert.Equal(t, "/reservations", res.Final)
}
