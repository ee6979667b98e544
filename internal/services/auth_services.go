package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthStore interface {
	CreateUser(ctx context.Context, email, passwordHash, firstName, lastName, role string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.Auth, error)
	GetByID(ctx context.Context, id int64) (*model.Auth, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	Repo      AuthStore
	Validator EmailValidator
}

func NewAuthService(r AuthStore, v EmailValidator) *AuthService {
	if v == nil {
		v = NewLocalValidator()
	}
	return &AuthService{Repo: r, Validator: v}
}

// Register creates a customer account and returns its id.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Validator.Validate(ctx, email); err != nil {
		return 0, err
	}
	if len(password) < MinPasswordLen {
		return 0, errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return 0, errors.New("first and last name are required")
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	return s.Repo.CreateUser(ctx, email, string(hash), firstName, lastName, "customer")
}

// SeedAdmin creates the bootstrap admin account if it doesn't exist yet.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Validator.Validate(ctx, email); err != nil {
		return err
	}
	if len(password) < MinPasswordLen {
		return errors.New("password must be at least 8 characters")
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil || exists {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.Repo.CreateUser(ctx, email, string(hash), "Store", "Admin", "admin")
	return err
}

// Login checks the credentials and returns the account record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Auth, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if u.DeletedAt != nil {
		return nil, errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return u, nil
}

func (s *AuthService) Profile(ctx context.Context, id int64) (*model.Auth, error) {
	return s.Repo.GetByID(ctx, id)
}
