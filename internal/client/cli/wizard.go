package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

var errWizardAborted = errors.New("reservation aborted")

// Reserve walks through the booking steps: pick a vehicle, pick the dates,
// confirm. An empty answer at the first step or a "no" at the last one
// leaves without booking.
func (a *App) Reserve(ctx context.Context) error {
	if _, ok, err := a.enter(ctx, router.LandingPath); !ok {
		return err
	}

	v, err := a.selectVehicle(ctx)
	if err != nil {
		return a.wizardDone(err)
	}
	start, end, err := a.selectDates()
	if err != nil {
		return a.wizardDone(err)
	}

	fmt.Fprintf(a.out, "== Confirm ==\nVehicle: %s (%s, %s)\nFrom:    %s\nTo:      %s\n",
		v.Name, v.Type, v.Engine, start.Format(models.DateLayout), end.Format(models.DateLayout))
	ok, err := GetConfirm(a.reader, "Book this vehicle?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return a.wizardDone(errWizardAborted)
	}

	r, err := a.reservations.Create(ctx, models.CreateReservationRequest{
		VehicleID: v.ID,
		StartDate: start.Format(models.DateLayout),
		EndDate:   end.Format(models.DateLayout),
	})
	if err != nil {
		return a.failed(ctx, "create reservation", err)
	}
	a.notify.Success(fmt.Sprintf("Reservation %s created.", r.ID))
	return nil
}

func (a *App) wizardDone(err error) error {
	if errors.Is(err, errWizardAborted) {
		a.notify.Info("Reservation cancelled.")
		return nil
	}
	return err
}

func (a *App) selectVehicle(ctx context.Context) (*models.Vehicle, error) {
	fmt.Fprintln(a.out, "== Step 1: choose a vehicle ==")

	raw, err := GetSimpleText(a.reader, "Filter (e.g. engine=1.8 size=5 suv), empty for all", a.out)
	if err != nil {
		return nil, err
	}
	f, err := parseVehicleFilter(strings.Fields(raw))
	if err != nil {
		a.notify.Error(err.Error())
		return nil, err
	}
	f.AvailableOnly = true

	vs, err := a.vehicles.List(ctx, f)
	if err != nil {
		return nil, a.failed(ctx, "list vehicles", err)
	}
	if len(vs) == 0 {
		a.notify.Warning("No available vehicles match.")
		return nil, errWizardAborted
	}
	fmt.Fprintln(a.out, vehicleTable(vs, true))

	for {
		choice, err := GetSimpleText(a.reader, "Vehicle # or id (empty to cancel)", a.out)
		if err != nil {
			return nil, err
		}
		if choice == "" {
			return nil, errWizardAborted
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(vs) {
			return &vs[n-1], nil
		}
		for i := range vs {
			if vs[i].ID == choice {
				return &vs[i], nil
			}
		}
		a.notify.Error(fmt.Sprintf("No vehicle %q in the list.", choice))
	}
}

// selectDates asks for a start date no earlier than today and an end date
// at least one day after it. Empty answers take the earliest allowed date.
func (a *App) selectDates() (time.Time, time.Time, error) {
	fmt.Fprintln(a.out, "== Step 2: choose dates ==")

	y, m, d := nowFn().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	start, err := a.askDate("Start date (YYYY-MM-DD)", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := a.askDate("End date (YYYY-MM-DD)", start.AddDate(0, 0, 1))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// askDate re-prompts until it gets a date on or after min.
func (a *App) askDate(prompt string, min time.Time) (time.Time, error) {
	for {
		s, err := GetTextWithDefault(a.reader, prompt, min.Format(models.DateLayout), a.out)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.Parse(models.DateLayout, s)
		if err != nil {
			a.notify.Error(fmt.Sprintf("%q is not a date.", s))
			continue
		}
		if t.Before(min) {
			a.notify.Error(fmt.Sprintf("The date must be %s or later.", min.Format(models.DateLayout)))
			continue
		}
		return t, nil
	}
}
