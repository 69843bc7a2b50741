package repository

import (
	"context"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/google/uuid"
)

type ListProjectsInput struct {
	OwnerID    uuid.UUID
	SearchTerm string         // case-insensitive substring match on name; "" means no filter
	Status     *domain.Status // nil means all statuses
}

// UpdateProjectInput is a partial patch: nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Subject     *string
	Level       *string
}

// ProjectRepository scopes every operation to the owning account.
// A project belonging to another owner is indistinguishable from a
// nonexistent one: both yield domain.ErrProjectNotFound.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	List(ctx context.Context, input ListProjectsInput) ([]*domain.Project, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, patch UpdateProjectInput) (*domain.Project, error)
	SetStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.Status) (*domain.Project, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
