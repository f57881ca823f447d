package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

var errPasswordMismatch = errors.New("passwords do not match")

// loginForm asks for credentials. An empty email leaves the form.
func (a *App) loginForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Log in ==")

	email, err := GetSimpleText(a.reader, "Email (empty to cancel)", a.out)
	if err != nil || email == "" {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, models.LoginRequest{Email: common.NormalizeEmail(email), Password: password})
	if err != nil {
		return a.failed(ctx, "login", err)
	}

	a.notify.Success(fmt.Sprintf("Welcome back, %s!", u.Name))
	return a.Go(ctx, router.LandingPath)
}

// registerForm creates an account and then sends the user to the login
// page; registering never logs in.
func (a *App) registerForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Create account ==")

	name, err := GetSimpleText(a.reader, "Name (empty to cancel)", a.out)
	if err != nil || name == "" {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}
	confirm, err := a.readSecret("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		a.notify.Error("Passwords do not match.")
		return errPasswordMismatch
	}

	_, err = a.auth.Register(ctx, models.RegisterRequest{Name: name, Email: common.NormalizeEmail(email), Password: password})
	if err != nil {
		return a.failed(ctx, "register", err)
	}

	a.notify.Notify(LevelSuccess, "Welcome", "Account created. Please log in.")
	return a.Go(ctx, router.LoginPath)
}

// resetPasswordForm collects the email for a reset request. The backend has
// no reset endpoint yet, so the request is only acknowledged.
func (a *App) resetPasswordForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Reset password ==")

	email, err := GetSimpleText(a.reader, "Email (empty to cancel)", a.out)
	if err != nil || email == "" {
		return err
	}
	a.notify.Info(fmt.Sprintf("If an account exists for %s, reset instructions will be sent.", common.NormalizeEmail(email)))
	return a.Go(ctx, router.LoginPath)
}

// Logout ends the session. The local session is gone even when the backend
// call fails.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.notify.Info("You are not logged in.")
		return nil
	}

	err := a.auth.Logout(ctx)
	if err != nil {
		a.failed(ctx, "logout", err)
	} else {
		a.notify.Success("You have been logged out.")
	}
	if navErr := a.Go(ctx, router.LoginPath); navErr != nil && err == nil {
		return navErr
	}
	return err
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	return nil
}
