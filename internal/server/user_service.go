package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/config"
	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/types"
)

// DBClient is the subset of database operations the user service needs.
// Defined as an interface so tests can substitute a fake.
type DBClient interface {
	CreateUser(ctx context.Context, email, passwordHash string, role types.Role) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*db.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// UserService implements registration, login and password management on
// top of the users table.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService returns a UserService backed by the given database client.
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser strips the password hash off a database row. Everything the
// service hands back to handlers goes through here.
func toAPIUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:        dbUser.ID,
		Email:     dbUser.Email,
		Role:      dbUser.Role,
		CreatedAt: dbUser.CreatedAt,
		UpdatedAt: dbUser.UpdatedAt,
	}
}

// Register creates a user account with the requested role. The unique
// index on email is the source of truth for duplicates; a violation is
// surfaced as ErrEmailAlreadyExists rather than a separate lookup.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser, err := s.db.CreateUser(ctx, req.Email, passwordHash, req.Role)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toAPIUser(dbUser), nil
}

// Login verifies credentials and returns the account. An unknown email
// and a wrong password both produce ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if dbUser == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Upgrade hashes created under a lower bcrypt cost. A failure here
	// must not block a successful login.
	if s.passwordConfig.NeedsRehash(dbUser.PasswordHash) {
		if newHash, err := s.passwordConfig.HashPassword(req.Password); err == nil {
			_ = s.db.UpdateUserPassword(ctx, dbUser.ID, newHash)
		}
	}

	return toAPIUser(dbUser), nil
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	dbUser, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return toAPIUser(dbUser), nil
}

// UpdatePassword replaces a user's password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	dbUser, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return ErrPasswordMismatch
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdateUserPassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
