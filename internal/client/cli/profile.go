package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

const profilePath = "/profile/edit"

// profileForm edits name, email and optionally the password. Unchanged
// fields are not sent.
func (a *App) profileForm(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		return a.Go(ctx, router.LoginPath)
	}

	fmt.Fprintln(a.out, "== Edit profile ==")
	var req models.UpdateProfileRequest

	name, err := GetTextWithDefault(a.reader, "Name", u.Name, a.out)
	if err != nil {
		return err
	}
	if name != u.Name {
		req.Name = &name
	}

	email, err := GetTextWithDefault(a.reader, "Email", u.Email, a.out)
	if err != nil {
		return err
	}
	if email = common.NormalizeEmail(email); email != u.Email {
		req.Email = &email
	}

	change, err := GetConfirm(a.reader, "Change password?", a.out)
	if err != nil {
		return err
	}
	if change {
		pw, err := a.readSecret("New password")
		if err != nil {
			return err
		}
		confirm, err := a.readSecret("Confirm new password")
		if err != nil {
			return err
		}
		if pw != confirm {
			a.notify.Error("Passwords do not match.")
			return errPasswordMismatch
		}
		if pw != "" {
			req.Password = &pw
		}
	}

	if _, err := a.users.UpdateProfile(ctx, req); err != nil {
		if errors.Is(err, services.ErrNothingToUpdate) {
			a.notify.Info("Nothing to update.")
			return nil
		}
		return a.failed(ctx, "update profile", err)
	}
	a.notify.Success("Profile updated.")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if _, ok, err := a.enter(ctx, profilePath); !ok {
		return err
	}

	ok, err := GetConfirm(a.reader, "Delete your account? This cannot be undone.", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.users.DeleteAccount(ctx); err != nil {
		return a.failed(ctx, "delete account", err)
	}
	a.notify.Success("Your account has been deleted.")
	return a.Go(ctx, router.LoginPath)
}

// dashboard greets the user and summarises the fleet and their bookings.
func (a *App) dashboard(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		return a.Go(ctx, router.LoginPath)
	}

	vs, err := a.vehicles.List(ctx, services.VehicleFilter{})
	if err != nil {
		return a.failed(ctx, "list vehicles", err)
	}
	rs, err := a.reservations.List(ctx, services.ReservationFilter{})
	if err != nil {
		return a.failed(ctx, "list reservations", err)
	}

	available := len(services.VehicleFilter{AvailableOnly: true}.Apply(vs))
	byStatus := make(map[models.ReservationStatus]int, 4)
	for _, r := range rs {
		byStatus[r.Status]++
	}

	fmt.Fprintf(a.out, "Hello, %s!\n", u.Name)
	fmt.Fprintf(a.out, "Vehicles:     %d (%d available)\n", len(vs), available)
	fmt.Fprintf(a.out, "Reservations: %d pending, %d active, %d completed, %d cancelled\n",
		byStatus[models.ReservationPending], byStatus[models.ReservationActive],
		byStatus[models.ReservationCompleted], byStatus[models.ReservationCancelled])
	return nil
}
