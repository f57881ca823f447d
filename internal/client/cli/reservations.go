package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

func (a *App) Reservations(ctx context.Context, args []string) error {
	return a.open(ctx, router.LandingPath, args)
}

// parseReservationFilter takes an optional status word; anything else is
// matched against the vehicle.
func parseReservationFilter(args []string) services.ReservationFilter {
	var f services.ReservationFilter
	var query []string
	for _, arg := range args {
		if s := models.ReservationStatus(strings.ToUpper(arg)); s.Valid() && f.Status == "" {
			f.Status = s
			continue
		}
		query = append(query, arg)
	}
	f.VehicleQuery = strings.Join(query, " ")
	return f
}

func (a *App) listReservations(ctx context.Context, args []string) error {
	rs, err := a.reservations.List(ctx, parseReservationFilter(args))
	if err != nil {
		return a.failed(ctx, "list reservations", err)
	}
	if len(rs) == 0 {
		a.notify.Info("No reservations yet. Use 'reserve' to book a vehicle.")
		return nil
	}

	t := table.New().Border(lipgloss.NormalBorder()).
		Headers("ID", "Vehicle", "From", "To", "Status", "Actions")
	for _, r := range rs {
		vehicle := r.VehicleID
		if r.Vehicle != nil {
			vehicle = r.Vehicle.Name
		}
		t.Row(r.ID, vehicle, r.StartDate, r.EndDate, string(r.Status), actionsFor(r.Status))
	}
	fmt.Fprintln(a.out, t.String())
	return nil
}

// actionsFor lists the commands that make sense for a reservation in s.
func actionsFor(s models.ReservationStatus) string {
	switch s {
	case models.ReservationPending:
		return "cancel"
	case models.ReservationActive:
		return "complete"
	}
	return ""
}

func (a *App) Cancel(ctx context.Context, id string) error {
	if _, ok, err := a.enter(ctx, router.LandingPath); !ok {
		return err
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Cancel reservation %s?", id), a.out)
	if err != nil || !ok {
		return err
	}
	r, err := a.reservations.Cancel(ctx, id)
	if err != nil {
		return a.failed(ctx, "cancel reservation", err)
	}
	a.notify.Success(fmt.Sprintf("Reservation %s cancelled.", r.ID))
	return nil
}

func (a *App) Complete(ctx context.Context, id string) error {
	if _, ok, err := a.enter(ctx, router.LandingPath); !ok {
		return err
	}

	r, err := a.reservations.Complete(ctx, id)
	if err != nil {
		return a.failed(ctx, "complete reservation", err)
	}
	a.notify.Success(fmt.Sprintf("Reservation %s completed.", r.ID))
	return nil
}
