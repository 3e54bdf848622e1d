package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/user"
	"github.com/cagnotte/cagnotte-api/internal/pkg/jwt"
	"github.com/cagnotte/cagnotte-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	users      user.Repository
	tokens     RefreshTokenRepository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(users user.Repository, tokens RefreshTokenRepository, jwtService *jwt.Service) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
	}
}

// Register creates a new user account and issues tokens
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         user.RoleUser,
		KYCStatus:    user.KYCUnverified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Login verifies credentials and issues tokens
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if u.IsSuspended {
		return nil, ErrAccountSuspended
	}

	return s.issueTokens(ctx, u)
}

// Refresh rotates a refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.tokens.GetByHash(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if stored == nil || !stored.Valid() {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefreshToken
	}
	if u.IsSuspended {
		return nil, ErrAccountSuspended
	}

	// Rotate: old token is single-use
	if err := s.tokens.Revoke(ctx, stored.TokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.IsSuspended)
	if err != nil {
		return nil, err
	}

	refreshToken, _, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, &RefreshToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		TokenHash: jwt.HashRefreshToken(refreshToken),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: u,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
