package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps every input error so handlers can answer 400.
	ErrValidation = errors.New("validation failed")

	ErrEmailRequired       = fmt.Errorf("%w: the email must be set", ErrValidation)
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrAlreadyBootstrapped = errors.New("superuser already provisioned")
)
