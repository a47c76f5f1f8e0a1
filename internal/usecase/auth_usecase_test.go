package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/pkg/jwt"
)

func newAuthFixture() (*Auth, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(users, jwtSvc), users
}

func TestAuthUsecase_Register_Validation(t *testing.T) {
	uc, _ := newAuthFixture()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"empty email", RegisterInput{Email: "", Password: "longenough", DisplayName: "A"}},
		{"not an email", RegisterInput{Email: "nope", Password: "longenough", DisplayName: "A"}},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short", DisplayName: "A"}},
		{"blank display name", RegisterInput{Email: "a@b.com", Password: "longenough", DisplayName: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Register(context.Background(), tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthFixture()

	in := RegisterInput{Email: "Anna@Example.com", Password: "password123", DisplayName: "Anna"}
	if _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Email comparison is case-insensitive.
	in.Email = "anna@example.com"
	if _, err := uc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthUsecase_LoginAndRefresh(t *testing.T) {
	uc, _ := newAuthFixture()

	reg, err := uc.Register(context.Background(), RegisterInput{
		Email: "anna@example.com", Password: "password123", DisplayName: "Anna",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Tokens.AccessToken == "" || reg.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair on register")
	}

	res, err := uc.Login(context.Background(), LoginInput{Email: "ANNA@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.UserID != reg.UserID {
		t.Fatalf("login resolved wrong user")
	}

	if _, err := uc.Login(context.Background(), LoginInput{Email: "anna@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := uc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	pair, err := uc.Refresh(context.Background(), res.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected fresh token pair")
	}

	// Access tokens are not valid refresh tokens.
	if _, err := uc.Refresh(context.Background(), res.Tokens.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}
}
