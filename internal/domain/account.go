package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     *string
	CreatedAt    time.Time
}
