package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

var ErrNothingToUpdate = errors.New("nothing to update")

// sessionAccess is the part of AuthService the profile operations need.
type sessionAccess interface {
	CurrentUser() *models.User
	Refresh(ctx context.Context)
	ClearSession()
}

// UserService edits and deletes the logged-in user's account.
type UserService struct {
	client client.Client
	auth   sessionAccess
}

func NewUserService(c client.Client, auth sessionAccess) *UserService {
	return &UserService{client: c, auth: auth}
}

// UpdateProfile patches the profile and then re-reads the session so the
// stored user reflects the change.
func (s *UserService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if s.auth.CurrentUser() == nil {
		return nil, ErrNotAuthenticated
	}
	if req.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	u, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.auth.Refresh(ctx)
	return u, nil
}

// DeleteAccount removes the account and forgets the local session.
func (s *UserService) DeleteAccount(ctx context.Context) error {
	if s.auth.CurrentUser() == nil {
		return ErrNotAuthenticated
	}
	if err := s.client.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.auth.ClearSession()
	return nil
}
