package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/classdesk/classdesk/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "token-test-secret-at-least-32-chars!!"

func TestIssueDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := token.NewService([]byte(testKey), time.Hour)

	signed, err := svc.Issue("teacher@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := svc.Decode(signed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if subject != "teacher@example.com" {
		t.Errorf("subject = %q, want teacher@example.com", subject)
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	svc := token.NewService([]byte(testKey), -time.Minute)

	signed, err := svc.Issue("teacher@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Well signed but past expiry must still fail.
	_, err = svc.Decode(signed)
	if !errors.Is(err, token.ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestDecode_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := token.NewService([]byte(testKey), time.Hour)
	verifier := token.NewService([]byte("a-completely-different-32-char-key!!"), time.Hour)

	signed, err := issuer.Issue("teacher@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = verifier.Decode(signed)
	if !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestDecode_UnsignedTokenRejected(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "teacher@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign with none: %v", err)
	}

	svc := token.NewService([]byte(testKey), time.Hour)
	_, err = svc.Decode(unsigned)
	if !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	svc := token.NewService([]byte(testKey), time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Decode(raw); !errors.Is(err, token.ErrMalformed) {
			t.Errorf("Decode(%q) err = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestDecode_MissingSubjectRejected(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := token.NewService([]byte(testKey), time.Hour)
	if _, err := svc.Decode(signed); !errors.Is(err, token.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
