package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/transport/http/middleware"
	"github.com/classdesk/classdesk/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type projectUsecaser interface {
	CreateProject(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context, input usecase.ListProjectsInput) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, projectID, ownerID uuid.UUID, input usecase.UpdateProjectInput) (*domain.Project, error)
	SetProjectStatus(ctx context.Context, projectID, ownerID uuid.UUID, status domain.Status) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error
}

type ProjectHandler struct {
	projectUsecase projectUsecaser
	logger         *slog.Logger
}

func NewProjectHandler(projectUsecase projectUsecaser, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectUsecase: projectUsecase,
		logger:         logger.With("component", "project_handler"),
	}
}

type createProjectRequest struct {
	Name        string  `json:"name"        binding:"required,max=256"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
	Subject     *string `json:"subject"     binding:"omitempty,max=256"`
	Level       *string `json:"level"       binding:"omitempty,max=256"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=256"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
	Subject     *string `json:"subject"     binding:"omitempty,max=256"`
	Level       *string `json:"level"       binding:"omitempty,max=256"`
}

type projectResponse struct {
	ID             string        `json:"id"`
	OwnerID        string        `json:"owner_id"`
	Name           string        `json:"name"`
	Description    *string       `json:"description,omitempty"`
	Subject        *string       `json:"subject,omitempty"`
	Level          *string       `json:"level,omitempty"`
	Status         domain.Status `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	LastModifiedAt time.Time     `json:"last_modified_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:             p.ID.String(),
		OwnerID:        p.OwnerID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Subject:        p.Subject,
		Level:          p.Level,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		LastModifiedAt: p.UpdatedAt,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.projectUsecase.CreateProject(c.Request.Context(), usecase.CreateProjectInput{
		OwnerID:     account.ID,
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Level:       req.Level,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(p))
}

// GET /projects?searchTerm=&status=
func (h *ProjectHandler) List(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), usecase.ListProjectsInput{
		OwnerID:      account.ID,
		SearchTerm:   c.Query("searchTerm"),
		StatusFilter: c.Query("status"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]projectResponse, len(projects))
	for i, p := range projects {
		items[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.projectUsecase.UpdateProject(c.Request.Context(), projectID, account.ID, usecase.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Level:       req.Level,
	})
	if err != nil {
		h.respondProjectError(c, "update project", projectID, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(p))
}

// PUT /projects/:id/archive
func (h *ProjectHandler) Archive(c *gin.Context) {
	h.setStatus(c, domain.StatusArchived)
}

// PUT /projects/:id/unarchive
func (h *ProjectHandler) Unarchive(c *gin.Context) {
	h.setStatus(c, domain.StatusActive)
}

func (h *ProjectHandler) setStatus(c *gin.Context, status domain.Status) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	p, err := h.projectUsecase.SetProjectStatus(c.Request.Context(), projectID, account.ID, status)
	if err != nil {
		h.respondProjectError(c, "set project status", projectID, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(p))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := h.projectUsecase.DeleteProject(c.Request.Context(), projectID, account.ID); err != nil {
		h.respondProjectError(c, "delete project", projectID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseProjectID reads the :id path param. An unparseable id cannot name an
// existing project, so it gets the same 404 as an unknown one.
func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, op string, projectID uuid.UUID, err error) {
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "project_id", projectID.String(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
