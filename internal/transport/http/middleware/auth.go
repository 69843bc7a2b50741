package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/repository"
	"github.com/classdesk/classdesk/internal/token"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// PrincipalKey is the gin context key under which Auth stores the resolved
// *domain.Account. Handlers read it through CurrentAccount.
const PrincipalKey = "principal"

// Auth resolves the request's bearer token to an authenticated account:
// it decodes the token, then loads the account by the embedded subject.
// A token whose account no longer exists fails the same way as a bad token.
func Auth(tokens *token.Service, accounts repository.AccountRepository, logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		subject, err := tokens.Decode(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		account, err := accounts.FindByEmail(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
				return
			}
			log.ErrorContext(c.Request.Context(), "resolve principal", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(PrincipalKey, account)
		c.Next()
	}
}

// CurrentAccount returns the principal resolved by Auth for this request.
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}
