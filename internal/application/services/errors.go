package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
	ErrStorage               = errors.New("object storage failure")
	ErrPersistence           = errors.New("metadata store failure")
)

// ValidationError is a caller mistake; the API answers it with 400 and Reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
