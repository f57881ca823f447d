// Package services contains server-side business logic: account
// registration and session tokens, the vehicle inventory and the
// reservation lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/cryptox"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rentkeeper/internal/server/config"
	srvmodels "github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/rentkeeper/internal/server/revocation"
)

const minPasswordLen = 6

// Session is the result of a successful login.
type Session struct {
	User  *models.User
	Token *auth.Token
}

// Principal identifies the caller of an authenticated request.
type Principal struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// UserService handles accounts and session tokens.
type UserService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	revoked          revocation.Store
	jwtSecret        []byte
	validityDuration time.Duration
	hashParams       cryptox.Params
	logger           logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, revoked revocation.Store,
	cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:               db,
		repomanager:      m,
		revoked:          revoked,
		jwtSecret:        []byte(cfg.SecretKey),
		validityDuration: cfg.TokenValidityDuration,
		hashParams:       cryptox.DefaultParams,
		logger:           logger.With("module", "users"),
	}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}

// Register creates an account. It does not start a session.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := common.NormalizeEmail(req.Email)

	switch {
	case name == "":
		return nil, validationError("name is required")
	case !validEmail(email):
		return nil, validationError("invalid email")
	case len(req.Password) < minPasswordLen:
		return nil, validationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	row := &srvmodels.User{Email: email, Name: name, PasswordHash: cryptox.HashPassword(req.Password, s.hashParams)}
	u, err := s.repomanager.Users(s.db).Create(ctx, row)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, common.ErrorInternal
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u.Public(), nil
}

// Login verifies credentials and mints a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "get user failed", "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored hash unreadable", "user_id", u.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.validityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: u.Public(), Token: token}, nil
}

// Authenticate validates a session token and checks it was not revoked.
func (s *UserService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error(ctx, "revocation lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	p := &Principal{UserID: claims.Subject, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Logout revokes the caller's token until it would have expired.
func (s *UserService) Logout(ctx context.Context, p *Principal) error {
	until := p.ExpiresAt
	if until.IsZero() {
		until = time.Now().Add(s.validityDuration)
	}
	if err := s.revoked.Revoke(ctx, p.TokenID, until); err != nil {
		s.logger.Error(ctx, "revoke failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Me returns the caller's profile. A token whose account is gone is
// treated as no session.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return u.Public(), nil
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	if req.IsEmpty() {
		return nil, validationError("nothing to update")
	}

	var upd users.Update
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		upd.Name = &name
	}
	if req.Email != nil {
		email := common.NormalizeEmail(*req.Email)
		if !validEmail(email) {
			return nil, validationError("invalid email")
		}
		upd.Email = &email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return nil, validationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
		}
		hash := cryptox.HashPassword(*req.Password, s.hashParams)
		upd.PasswordHash = &hash
	}

	u, err := s.repomanager.Users(s.db).Update(ctx, userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorUnauthorized
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
		}
		s.logger.Error(ctx, "update user failed", "error", err)
		return nil, common.ErrorInternal
	}
	return u.Public(), nil
}

// Delete removes the caller's account; its reservations cascade.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "delete user failed", "error", err)
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}
