// Package vehicles stores the vehicle inventory.
package vehicles

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id string) (*models.Vehicle, error)
	Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
}
