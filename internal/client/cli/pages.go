package cli

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
)

// Go navigates to path and renders whatever page the router settles on.
func (a *App) Go(ctx context.Context, path string) error {
	return a.open(ctx, path, nil)
}

func (a *App) open(ctx context.Context, path string, args []string) error {
	res, ok, err := a.enter(ctx, path)
	if err != nil || !ok {
		return err
	}
	return a.render(ctx, res.Page, args)
}

// enter navigates to path. ok is true only when the route was reached
// without redirection; otherwise the page the router redirected to has
// already been rendered.
func (a *App) enter(ctx context.Context, path string) (router.Result, bool, error) {
	res, err := a.nav.Navigate(ctx, path)
	if err != nil {
		return res, false, a.failed(ctx, "navigation", err)
	}

	a.page = res.Final
	if !res.Redirected {
		return res, true, nil
	}

	a.logger.Debug(ctx, "redirected", "from", path, "to", res.Final)
	if res.Final == router.LoginPath && path != "/" {
		a.notify.Warning("Please log in to continue.")
	}
	return res, false, a.render(ctx, res.Page, nil)
}

func (a *App) render(ctx context.Context, page string, args []string) error {
	switch page {
	case router.PageLogin:
		return a.loginForm(ctx)
	case router.PageRegister:
		return a.registerForm(ctx)
	case router.PageResetPassword:
		return a.resetPasswordForm(ctx)
	case router.PageReservations:
		return a.listReservations(ctx, args)
	case router.PageVehicles:
		return a.listVehicles(ctx, args)
	case router.PageDashboard:
		return a.dashboard(ctx)
	case router.PageProfileEdit:
		return a.profileForm(ctx)
	}
	return nil
}
