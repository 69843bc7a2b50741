package usecase

import (
	"context"
	"fmt"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/repository"
	"github.com/google/uuid"
)

type ProjectUsecase struct {
	repo repository.ProjectRepository
}

func NewProjectUsecase(repo repository.ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{repo: repo}
}

type CreateProjectInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Subject     *string
	Level       *string
}

func (u *ProjectUsecase) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	p := &domain.Project{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Subject:     input.Subject,
		Level:       input.Level,
		Status:      domain.StatusActive,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

type ListProjectsInput struct {
	OwnerID      uuid.UUID
	SearchTerm   string
	StatusFilter string // "", "all", or a status value
}

func (u *ProjectUsecase) ListProjects(ctx context.Context, input ListProjectsInput) ([]*domain.Project, error) {
	repoInput := repository.ListProjectsInput{
		OwnerID:    input.OwnerID,
		SearchTerm: input.SearchTerm,
	}

	switch input.StatusFilter {
	case "", "all":
	default:
		s := domain.Status(input.StatusFilter)
		if !s.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		repoInput.Status = &s
	}

	projects, err := u.repo.List(ctx, repoInput)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Subject     *string
	Level       *string
}

func (u *ProjectUsecase) UpdateProject(ctx context.Context, projectID, ownerID uuid.UUID, input UpdateProjectInput) (*domain.Project, error) {
	p, err := u.repo.Update(ctx, projectID, ownerID, repository.UpdateProjectInput{
		Name:        input.Name,
		Description: input.Description,
		Subject:     input.Subject,
		Level:       input.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

func (u *ProjectUsecase) SetProjectStatus(ctx context.Context, projectID, ownerID uuid.UUID, status domain.Status) (*domain.Project, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	p, err := u.repo.SetStatus(ctx, projectID, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("set project status: %w", err)
	}
	return p, nil
}

func (u *ProjectUsecase) DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error {
	if err := u.repo.Delete(ctx, projectID, ownerID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
