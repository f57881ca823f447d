package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/repomanager"
)

// VehicleService manages the inventory.
type VehicleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewVehicleService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *VehicleService {
	return &VehicleService{db: db, repomanager: m, logger: logger.With("module", "vehicles")}
}

// passThrough keeps sentinel errors and hides everything else.
func (s *VehicleService) passThrough(ctx context.Context, op string, err error) error {
	for _, known := range []error{common.ErrorNotFound, common.ErrorValidation, common.ErrorAlreadyExists} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

func (s *VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	list, err := s.repomanager.Vehicles(s.db).List(ctx)
	if err != nil {
		return nil, s.passThrough(ctx, "list vehicles", err)
	}
	return list, nil
}

func (s *VehicleService) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, validationError("name is required")
	}
	if req.Size < 0 {
		return nil, validationError("size must not be negative")
	}

	v, err := s.repomanager.Vehicles(s.db).Create(ctx, req)
	if err != nil {
		return nil, s.passThrough(ctx, "create vehicle", err)
	}
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		req.Name = &name
	}
	if req.Size != nil && *req.Size < 0 {
		return nil, validationError("size must not be negative")
	}

	v, err := s.repomanager.Vehicles(s.db).Update(ctx, id, req)
	if err != nil {
		return nil, s.passThrough(ctx, "update vehicle", err)
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Vehicles(s.db).Delete(ctx, id); err != nil {
		return s.passThrough(ctx, "delete vehicle", err)
	}
	return nil
}
