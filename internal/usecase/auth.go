package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/email"
	"github.com/classdesk/classdesk/internal/password"
	"github.com/classdesk/classdesk/internal/repository"
	"github.com/classdesk/classdesk/internal/token"
)

type AuthUsecase struct {
	accounts repository.AccountRepository
	tokens   *token.Service
	email    email.Sender
	logger   *slog.Logger
}

func NewAuthUsecase(accounts repository.AccountRepository, tokens *token.Service, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		accounts: accounts,
		tokens:   tokens,
		email:    emailSender,
		logger:   logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	Email    string
	Password string
	FullName *string
}

// Signup creates the account and returns a session token for it.
// Uniqueness is enforced by the store, so a concurrent duplicate signup
// surfaces as domain.ErrEmailTaken with no partial state.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (string, error) {
	addr := normalizeEmail(input.Email)

	hash, err := password.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account, err := u.accounts.Create(ctx, &domain.Account{
		Email:        addr,
		PasswordHash: hash,
		FullName:     input.FullName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("create account: %w", err)
	}

	signed, err := u.tokens.Issue(account.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	// Best-effort: a failed welcome email never fails the signup.
	if err := u.email.Send(ctx, account.Email, "Welcome to Classdesk", welcomeBody(account)); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return signed, nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plain string) (string, error) {
	account, err := u.accounts.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	ok, err := password.Verify(plain, account.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	signed, err := u.tokens.Issue(account.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

func welcomeBody(account *domain.Account) string {
	name := "there"
	if account.FullName != nil && *account.FullName != "" {
		name = *account.FullName
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your Classdesk account is ready. Sign in and create your first teaching project.</p>`,
		name,
	)
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
