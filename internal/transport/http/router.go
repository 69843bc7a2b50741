package httptransport

import (
	"log/slog"

	"github.com/classdesk/classdesk/internal/repository"
	"github.com/classdesk/classdesk/internal/token"
	"github.com/classdesk/classdesk/internal/transport/http/handler"
	"github.com/classdesk/classdesk/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	tokens *token.Service,
	accounts repository.AccountRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens, accounts, logger)

	auth := r.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authMW, authHandler.Me)

	// Every project route runs behind the identity resolver; handlers scope
	// all queries to the resolved principal.
	projects := r.Group("/projects", authMW)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.PUT("/:id", projectHandler.Update)
	projects.PUT("/:id/archive", projectHandler.Archive)
	projects.PUT("/:id/unarchive", projectHandler.Unarchive)
	projects.DELETE("/:id", projectHandler.Delete)

	return r
}
