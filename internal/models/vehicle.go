package models

import "time"

// Vehicle is a rentable car in the inventory.
type Vehicle struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Year      string     `json:"year"`
	Type      string     `json:"type"`
	Engine    string     `json:"engine"`
	Size      int        `json:"size"`
	Available *bool      `json:"available,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
}

// IsAvailable treats a missing availability flag as available.
func (v *Vehicle) IsAvailable() bool {
	return v.Available == nil || *v.Available
}

// CreateVehicleRequest is the body of POST /vehicles.
type CreateVehicleRequest struct {
	Name   string `json:"name"`
	Year   string `json:"year"`
	Type   string `json:"type"`
	Engine string `json:"engine"`
	Size   int    `json:"size"`
}

// UpdateVehicleRequest is the body of PATCH /vehicles/{id}.
type UpdateVehicleRequest struct {
	Name   *string `json:"name,omitempty"`
	Year   *string `json:"year,omitempty"`
	Type   *string `json:"type,omitempty"`
	Engine *string `json:"engine,omitempty"`
	Size   *int    `json:"size,omitempty"`
}
