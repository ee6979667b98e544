package services

import (
	"context"
	"errors"
)

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// LocalValidator checks the address shape only, no external reputation call.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator { return &LocalValidator{} }

func (*LocalValidator) Validate(_ context.Context, email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
