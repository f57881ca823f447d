package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/repomanager"
)

var nowFn = time.Now

// ReservationService runs the booking lifecycle: PENDING or ACTIVE until
// the renter cancels or completes it.
type ReservationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewReservationService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ReservationService {
	return &ReservationService{db: db, repomanager: m, logger: logger.With("module", "reservations")}
}

func (s *ReservationService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// List returns the caller's reservations, newest first.
func (s *ReservationService) List(ctx context.Context, userID string) ([]models.Reservation, error) {
	list, err := s.repomanager.Reservations(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "list reservations", err)
	}
	return list, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, validationError(field + " must be YYYY-MM-DD")
	}
	return t, nil
}

// Create books a vehicle. The vehicle row is locked for the transaction so
// two overlapping bookings cannot both pass the overlap check.
func (s *ReservationService) Create(ctx context.Context, userID string, req models.CreateReservationRequest) (*models.Reservation, error) {
	if strings.TrimSpace(req.VehicleID) == "" {
		return nil, validationError("vehicleId is required")
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, validationError("endDate must be after startDate")
	}
	today := nowFn().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		return nil, validationError("startDate must not be in the past")
	}

	r := &models.Reservation{
		VehicleID: strings.TrimSpace(req.VehicleID),
		UserID:    userID,
		StartDate: start.Format(models.DateLayout),
		EndDate:   end.Format(models.DateLayout),
		Status:    models.ReservationPending,
	}

	var created *models.Reservation
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reservations(tx)
		if err := repo.LockVehicle(ctx, r.VehicleID); err != nil {
			return err
		}
		n, err := repo.CountOverlapping(ctx, r.VehicleID, r.StartDate, r.EndDate)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrorConflict
		}
		created, err = repo.Create(ctx, r)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, validationError("vehicle does not exist")
		case errors.Is(err, common.ErrorConflict), errors.Is(err, common.ErrorValidation):
			return nil, err
		}
		return nil, s.internal(ctx, "create reservation", err)
	}

	s.logger.Info(ctx, "reservation created", "reservation_id", created.ID, "vehicle_id", created.VehicleID)
	return created, nil
}

func (s *ReservationService) Cancel(ctx context.Context, userID, id string) (*models.Reservation, error) {
	return s.transition(ctx, userID, id, models.ReservationCancelled)
}

func (s *ReservationService) Complete(ctx context.Context, userID, id string) (*models.Reservation, error) {
	return s.transition(ctx, userID, id, models.ReservationCompleted)
}

// transition moves an open reservation owned by userID to a final state.
// Someone else's reservation reads as not found.
func (s *ReservationService) transition(ctx context.Context, userID, id string, to models.ReservationStatus) (*models.Reservation, error) {
	var result *models.Reservation
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reservations(tx)
		r, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if r.UserID != userID {
			return common.ErrorNotFound
		}
		if !r.Status.Open() {
			return common.ErrorInvalidTransition
		}
		if err := repo.UpdateStatus(ctx, id, to); err != nil {
			return err
		}
		r.Status = to
		result = r
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorInvalidTransition) {
			return nil, err
		}
		return nil, s.internal(ctx, "update reservation", err)
	}
	return result, nil
}
