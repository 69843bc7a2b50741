package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxListRows caps a single listing; callers must not treat a short page
// as proof of a total count.
const maxListRows = 100

const projectColumns = `id, owner_id, name, description, subject, level, status, created_at, updated_at`

type ProjectRepository struct {
	pool PgxPool
}

func NewProjectRepository(pool PgxPool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	query := `
		INSERT INTO projects (owner_id, name, description, subject, level, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + projectColumns

	row := r.pool.QueryRow(ctx, query,
		p.OwnerID, p.Name, p.Description, p.Subject, p.Level, p.Status,
	)
	return scanProject(row)
}

func (r *ProjectRepository) List(ctx context.Context, input repository.ListProjectsInput) ([]*domain.Project, error) {
	args := []any{input.OwnerID}
	where := []string{"owner_id = $1"}

	if input.SearchTerm != "" {
		args = append(args, "%"+escapeLike(input.SearchTerm)+"%")
		where = append(where, fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if input.Status != nil {
		args = append(args, *input.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT %d`,
		projectColumns, strings.Join(where, " AND "), maxListRows)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id, ownerID uuid.UUID, patch repository.UpdateProjectInput) (*domain.Project, error) {
	args := []any{id, ownerID}
	set := []string{"updated_at = NOW()"}

	assign := func(column string, v *string) {
		if v != nil {
			args = append(args, *v)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	assign("name", patch.Name)
	assign("description", patch.Description)
	assign("subject", patch.Subject)
	assign("level", patch.Level)

	query := fmt.Sprintf(`
		UPDATE projects
		SET %s
		WHERE id = $1 AND owner_id = $2
		RETURNING %s`,
		strings.Join(set, ", "), projectColumns)

	return scanProject(r.pool.QueryRow(ctx, query, args...))
}

// SetStatus is a safe no-op when the project is already in the desired
// state; updated_at is bumped either way.
func (r *ProjectRepository) SetStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.Status) (*domain.Project, error) {
	query := `
		UPDATE projects
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + projectColumns

	return scanProject(r.pool.QueryRow(ctx, query, id, ownerID, status))
}

func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Subject, &p.Level,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
