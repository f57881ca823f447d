package services

import (
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// VehicleFilter narrows a vehicle list. Zero values match everything.
type VehicleFilter struct {
	Query         string // substring of name or type, case-insensitive
	Type          string
	Engine        string
	Size          int
	AvailableOnly bool
}

func (f VehicleFilter) Match(v models.Vehicle) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(v.Name), q) && !strings.Contains(strings.ToLower(v.Type), q) {
			return false
		}
	}
	if f.Type != "" && !strings.EqualFold(v.Type, f.Type) {
		return false
	}
	if f.Engine != "" && v.Engine != f.Engine {
		return false
	}
	if f.Size != 0 && v.Size != f.Size {
		return false
	}
	if f.AvailableOnly && !v.IsAvailable() {
		return false
	}
	return true
}

func (f VehicleFilter) Apply(vs []models.Vehicle) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vs))
	for _, v := range vs {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// ReservationFilter narrows a reservation list.
type ReservationFilter struct {
	Status       models.ReservationStatus
	VehicleQuery string // substring of the vehicle's name or type
}

func (f ReservationFilter) Match(r models.Reservation) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.VehicleQuery)); q != "" {
		if r.Vehicle == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(r.Vehicle.Name), q) && !strings.Contains(strings.ToLower(r.Vehicle.Type), q) {
			return false
		}
	}
	return true
}

func (f ReservationFilter) Apply(rs []models.Reservation) []models.Reservation {
	out := make([]models.Reservation, 0, len(rs))
	for _, r := range rs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
