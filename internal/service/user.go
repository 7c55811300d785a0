package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/townboard/townboard/internal/metrics"
	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/repository"
)

// UserRepository is the persistence surface the user directory needs.
// *repository.Repository satisfies it; tests use an in-memory fake.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordHasher derives and verifies password hashes. The concrete scheme
// (Argon2id) lives in the auth package behind this seam.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// UserService registers and authenticates accounts.
type UserService struct {
	repo    UserRepository
	hasher  PasswordHasher
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, hasher PasswordHasher, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		hasher:  hasher,
		metrics: recorder,
	}
}

// Register creates a new account. Emails are unique case-insensitively.
// The raw password is hashed before anything is stored.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, requiredField("name")
	}
	if email == "" {
		return nil, requiredField("email")
	}
	if strings.TrimSpace(password) == "" {
		return nil, requiredField("password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Authenticate checks credentials and returns the matching user.
// The error is identical whether the email is unknown or the password is
// wrong, so callers cannot probe which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID loads a user, e.g. while resolving a session token to an actor.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
