package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

var ErrInvalidDates = errors.New("end date must be after start date")

type ReservationService struct {
	client client.Client
}

func NewReservationService(c client.Client) *ReservationService {
	return &ReservationService{client: c}
}

func (s *ReservationService) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	rs, err := s.client.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return f.Apply(rs), nil
}

// Create books a vehicle. An empty EndDate means a one-day rental.
func (s *ReservationService) Create(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)

	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start date %q: %w", req.StartDate, ErrInvalidDates)
	}
	if req.EndDate == "" {
		req.EndDate = start.AddDate(0, 0, 1).Format(models.DateLayout)
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil || !end.After(start) {
		return nil, ErrInvalidDates
	}

	r, err := s.client.CreateReservation(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return r, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.client.CancelReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}
	return r, nil
}

func (s *ReservationService) Complete(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.client.CompleteReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete reservation: %w", err)
	}
	return r, nil
}
