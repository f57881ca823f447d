package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationActive, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Open reports whether a reservation in state s still holds its vehicle.
func (s ReservationStatus) Open() bool {
	return s == ReservationPending || s == ReservationActive
}

// DateLayout is the calendar date format used on the wire for reservations.
const DateLayout = "2006-01-02"

// Reservation books a vehicle for a date range.
type Reservation struct {
	ID        string            `json:"id"`
	VehicleID string            `json:"vehicleId"`
	UserID    string            `json:"userId"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Status    ReservationStatus `json:"status"`
	Vehicle   *Vehicle          `json:"vehicle,omitempty"`
	User      *User             `json:"user,omitempty"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// CreateReservationRequest is the body of POST /reservations.
type CreateReservationRequest struct {
	VehicleID string `json:"vehicleId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
