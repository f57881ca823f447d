// Package reservations stores vehicle bookings.
package reservations

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	Get(ctx context.Context, id string) (*models.Reservation, error)
	// LockVehicle takes a row lock on the vehicle for the rest of the
	// transaction so concurrent bookings of it serialize.
	LockVehicle(ctx context.Context, vehicleID string) error
	// CountOverlapping counts open reservations of the vehicle that
	// intersect [start, end).
	CountOverlapping(ctx context.Context, vehicleID, start, end string) (int, error)
	Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
}
