package repository

import (
	"context"

	"github.com/classdesk/classdesk/internal/domain"
)

type AccountRepository interface {
	// Create inserts a new account. The store's uniqueness constraint on
	// email makes concurrent duplicate signups safe: exactly one wins,
	// the rest get domain.ErrEmailTaken.
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}
