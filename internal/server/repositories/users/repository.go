package users

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
)

// Update holds the columns a profile update may change; nil leaves a column as is.
type Update struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd Update) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
