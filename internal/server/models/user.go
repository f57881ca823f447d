// Package models holds the backend's persistence types. Wire types shared
// with the client live in internal/models.
package models

import (
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// User is an account row, password hash included.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Public strips credentials for responses.
func (u *User) Public() *models.User {
	created := u.CreatedAt
	return &models.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: &created}
}
