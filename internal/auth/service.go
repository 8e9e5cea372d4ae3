package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/libraryhub/libraryhub/internal/config"
	"github.com/libraryhub/libraryhub/internal/database/users"
	"github.com/libraryhub/libraryhub/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUserInactive     = errors.New("user is not active")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrUsernameRequired = errors.New("username is required")
	ErrBadCredentials   = errors.New("incorrect email or password")
)

// UserStore defines the user data access the auth service needs.
type UserStore interface {
	Create(user *entities.User) error
	GetByID(id uint) (*entities.User, error)
	GetActiveByEmail(email string) (*entities.User, error)
}

// Service handles registration and credential checks.
type Service struct {
	store  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(store UserStore, cfg config.Auth) *Service {
	return &Service{
		store:  store,
		config: cfg,
	}
}

// Register creates a new user account with the user role.
func (s *Service) Register(email, username, password string) (*entities.User, error) {
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if username == "" {
		return nil, ErrUsernameRequired
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}
	if err := s.store.Create(user); err != nil {
		if errors.Is(err, users.ErrExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials against active users. The same
// error is returned for an unknown email and a wrong password.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.store.GetActiveByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// GetActiveByEmail loads an active user by email, for token validation.
func (s *Service) GetActiveByEmail(email string) (*entities.User, error) {
	user, err := s.store.GetActiveByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
