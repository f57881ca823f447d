package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

type VehicleService struct {
	client client.Client
}

func NewVehicleService(c client.Client) *VehicleService {
	return &VehicleService{client: c}
}

// List fetches the inventory and applies f locally.
func (s *VehicleService) List(ctx context.Context, f VehicleFilter) ([]models.Vehicle, error) {
	vs, err := s.client.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return f.Apply(vs), nil
}

func (s *VehicleService) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	v, err := s.client.CreateVehicle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	v, err := s.client.UpdateVehicle(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteVehicle(ctx, id); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
