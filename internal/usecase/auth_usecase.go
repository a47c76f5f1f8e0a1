package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

const minPasswordLength = 8

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	UserID uuid.UUID
	Email  string
	Tokens TokenPair
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	users repository.UserRepository
	jwt   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	displayName := strings.TrimSpace(in.DisplayName)
	if email == "" || !strings.Contains(email, "@") || displayName == "" {
		return AuthResult{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength {
		return AuthResult{}, ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	if exists {
		return AuthResult{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	acc := user.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.users.CreateAccount(ctx, acc, displayName); err != nil {
		if exists, exErr := u.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return AuthResult{}, ErrEmailAlreadyRegistered
		}
		return AuthResult{}, ErrInternal
	}

	return u.issueTokens(acc.ID, acc.Email)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	acc, err := u.users.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := u.users.TouchLastActive(ctx, acc.ID); err != nil {
		return AuthResult{}, ErrInternal
	}

	return u.issueTokens(acc.ID, acc.Email)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	// The account must still exist; a deleted user cannot mint new tokens.
	acc, err := u.users.GetAccountByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, ErrInternal
	}

	res, err := u.issueTokens(acc.ID, acc.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return res.Tokens, nil
}

func (u *Auth) issueTokens(userID uuid.UUID, email string) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(userID, email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(userID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{
		UserID: userID,
		Email:  email,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
