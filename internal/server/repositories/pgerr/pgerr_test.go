package pgerr

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, common.ErrorNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, common.ErrorAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk"}, common.ErrorNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, common.ErrorValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Wrap(tt.in), tt.want)
		})
	}
}

func TestWrap_Other(t *testing.T) {
	assert.NoError(t, Wrap(nil))

	err := Wrap(errors.New("db down"))
	assert.EqualError(t, err, "db error: db down")

	err = Wrap(&pgconn.PgError{Code: "42P01", Message: "relation missing"})
	assert.Contains(t, err.Error(), "db error:")
}
