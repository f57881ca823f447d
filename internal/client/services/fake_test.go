package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	// presets
	MeUser *models.User
	MeErr  error

	LoginResp *models.AuthResponse
	LoginErr  error

	RegisterResp *models.AuthResponse
	RegisterErr  error

	LogoutErr error

	Vehicles    []models.Vehicle
	VehiclesErr error

	Reservations    []models.Reservation
	ReservationsErr error
	CreatedRes      *models.Reservation
	CreateResErr    error
	GotCreateRes    models.CreateReservationRequest

	ProfileUser *models.User
	ProfileErr  error
	DeleteErr   error
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.record("me")
	return f.MeUser, f.MeErr
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.record("login")
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.record("register")
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("logout")
	return f.LogoutErr
}

func (f *fakeClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	f.record("list_vehicles")
	return f.Vehicles, f.VehiclesErr
}

func (f *fakeClient) CreateVehicle(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	f.record("create_vehicle")
	return &models.Vehicle{ID: "v-new", Name: req.Name}, nil
}

func (f *fakeClient) DeleteVehicle(ctx context.Context, id string) error {
	f.record("delete_vehicle")
	return nil
}

func (f *fakeClient) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	f.record("list_reservations")
	return f.Reservations, f.ReservationsErr
}

func (f *fakeClient) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	f.record("create_reservation")
	f.GotCreateRes = req
	return f.CreatedRes, f.CreateResErr
}

func (f *fakeClient) CancelReservation(ctx context.Context, id string) (*models.Reservation, error) {
	f.record("cancel_reservation")
	return &models.Reservation{ID: id, Status: models.ReservationCancelled}, nil
}

func (f *fakeClient) CompleteReservation(ctx context.Context, id string) (*models.Reservation, error) {
	f.record("complete_reservation")
	return &models.Reservation{ID: id, Status: models.ReservationCompleted}, nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	f.record("update_profile")
	return f.ProfileUser, f.ProfileErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	f.record("delete_account")
	return f.DeleteErr
}
