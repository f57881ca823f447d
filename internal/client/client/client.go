package client

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

type Client interface {
	Close() error

	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)

	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	ListReservations(ctx context.Context) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*models.Reservation, error)
	CompleteReservation(ctx context.Context, id string) (*models.Reservation, error)

	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context) error
}
