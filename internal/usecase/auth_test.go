package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/password"
	"github.com/classdesk/classdesk/internal/token"
	"github.com/classdesk/classdesk/internal/usecase"
)

// ---- fakes ----

type fakeAccountRepo struct {
	create      func(ctx context.Context, a *domain.Account) (*domain.Account, error)
	findByEmail func(ctx context.Context, email string) (*domain.Account, error)
}

func (r *fakeAccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	return r.create(ctx, a)
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findByEmail(ctx, email)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		return nil
	}
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

func newTokens() *token.Service {
	return token.NewService([]byte(testJWTKey), time.Hour)
}

func newAuthUsecase(repo *fakeAccountRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return usecase.NewAuthUsecase(repo, newTokens(), sender, logger)
}

// ---- Signup ----

func TestSignup_HashesPasswordAndLowercasesEmail(t *testing.T) {
	var created *domain.Account
	repo := &fakeAccountRepo{
		create: func(_ context.Context, a *domain.Account) (*domain.Account, error) {
			created = a
			return a, nil
		},
	}

	_, err := newAuthUsecase(repo, &fakeEmailSender{}).Signup(context.Background(), usecase.SignupInput{
		Email:    "  Teacher@Example.COM ",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Email != "teacher@example.com" {
		t.Errorf("stored email = %q, want normalized lowercase", created.Email)
	}
	if created.PasswordHash == "sup3r-secret" || created.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
	ok, err := password.Verify("sup3r-secret", created.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash does not verify the original password (ok=%v err=%v)", ok, err)
	}
}

func TestSignup_ReturnsDecodableToken(t *testing.T) {
	repo := &fakeAccountRepo{
		create: func(_ context.Context, a *domain.Account) (*domain.Account, error) {
			return a, nil
		},
	}

	signed, err := newAuthUsecase(repo, &fakeEmailSender{}).Signup(context.Background(), usecase.SignupInput{
		Email:    "teacher@example.com",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := newTokens().Decode(signed)
	if err != nil {
		t.Fatalf("decode issued token: %v", err)
	}
	if subject != "teacher@example.com" {
		t.Errorf("token subject = %q, want the account email", subject)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &fakeAccountRepo{
		create: func(_ context.Context, _ *domain.Account) (*domain.Account, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	_, err := newAuthUsecase(repo, &fakeEmailSender{}).Signup(context.Background(), usecase.SignupInput{
		Email:    "teacher@example.com",
		Password: "sup3r-secret",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignup_WelcomeEmailFailureDoesNotFailSignup(t *testing.T) {
	repo := &fakeAccountRepo{
		create: func(_ context.Context, a *domain.Account) (*domain.Account, error) {
			return a, nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			return errors.New("smtp down")
		},
	}

	signed, err := newAuthUsecase(repo, sender).Signup(context.Background(), usecase.SignupInput{
		Email:    "teacher@example.com",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a token despite email failure")
	}
}

// ---- Login ----

func accountWithPassword(t *testing.T, email, plain string) *domain.Account {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.Account{Email: email, PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	acc := accountWithPassword(t, "teacher@example.com", "sup3r-secret")
	repo := &fakeAccountRepo{
		findByEmail: func(_ context.Context, email string) (*domain.Account, error) {
			if email != acc.Email {
				return nil, domain.ErrAccountNotFound
			}
			return acc, nil
		},
	}

	signed, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "Teacher@example.com", "sup3r-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := newTokens().Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if subject != acc.Email {
		t.Errorf("subject = %q, want %q", subject, acc.Email)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	acc := accountWithPassword(t, "teacher@example.com", "sup3r-secret")
	repo := &fakeAccountRepo{
		findByEmail: func(_ context.Context, email string) (*domain.Account, error) {
			if email != acc.Email {
				return nil, domain.ErrAccountNotFound
			}
			return acc, nil
		},
	}
	uc := newAuthUsecase(repo, &fakeEmailSender{})

	_, errWrongPassword := uc.Login(context.Background(), acc.Email, "not-the-password")
	_, errUnknownEmail := uc.Login(context.Background(), "nobody@example.com", "sup3r-secret")

	if !errors.Is(errWrongPassword, domain.ErrUnauthenticated) {
		t.Errorf("wrong password err = %v, want ErrUnauthenticated", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, domain.ErrUnauthenticated) {
		t.Errorf("unknown email err = %v, want ErrUnauthenticated", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Errorf("error shapes differ: %q vs %q — leaks which part failed", errWrongPassword, errUnknownEmail)
	}
}

func TestLogin_RepoErrorIsNotUnauthenticated(t *testing.T) {
	repo := &fakeAccountRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Account, error) {
			return nil, errors.New("db down")
		},
	}

	_, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "teacher@example.com", "sup3r-secret")
	if err == nil || errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v, want an internal error distinct from ErrUnauthenticated", err)
	}
}
