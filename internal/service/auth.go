package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"humanizerapi/internal/config"
	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// AuthResult bundles a signed session token with the profile it belongs to.
type AuthResult struct {
	Token   string         `json:"token"`
	Profile *model.Profile `json:"profile"`
}

// AuthService handles sign-up, sign-in and current-user retrieval. Sessions
// are stateless HS256 JWTs with the profile id as subject.
type AuthService interface {
	// SignUp creates a profile with the starting credit grant and returns a
	// session token. ErrEmailTaken when the email is already registered.
	SignUp(ctx context.Context, email, password, name string) (*AuthResult, error)

	// SignIn verifies credentials and returns a session token.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)

	// Me returns the profile for an authenticated user id.
	Me(ctx context.Context, userID string) (*model.Profile, error)
}

type authService struct {
	profiles    repository.ProfileRepository
	secret      []byte
	tokenTTL    time.Duration
	signupGrant int
}

// NewAuthService constructs an AuthService. signupGrant is the credit balance
// given to every new account.
func NewAuthService(profiles repository.ProfileRepository, cfg config.AuthConfig, signupGrant int) AuthService {
	return &authService{
		profiles:    profiles,
		secret:      []byte(cfg.JWTSecret),
		tokenTTL:    time.Duration(cfg.TokenTTLMin) * time.Minute,
		signupGrant: signupGrant,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.profiles.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Credits:      s.signupGrant,
		Tier:         model.TierFree,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.profiles.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return s.session(stored)
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(p)
}

func (s *authService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *authService) session(p *model.Profile) (*AuthResult, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   p.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	// Never hand the hash back to callers.
	out := *p
	out.PasswordHash = ""
	return &AuthResult{Token: signed, Profile: &out}, nil
}
