package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/user"
	"github.com/cagnotte/cagnotte-api/internal/pkg/jwt"
)

type fakeUsers struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUsers) Create(_ context.Context, u *user.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUsers) UpdateKYCStatus(_ context.Context, _ uuid.UUID, _ user.KYCStatus) error {
	return nil
}

func (f *fakeUsers) UpdateSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	u, ok := f.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsSuspended = suspended
	return nil
}

type fakeTokens struct {
	byHash map[string]*RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byHash: make(map[string]*RefreshToken)}
}

func (f *fakeTokens) Store(_ context.Context, token *RefreshToken) error {
	cp := *token
	f.byHash[token.TokenHash] = &cp
	return nil
}

func (f *fakeTokens) GetByHash(_ context.Context, hash string) (*RefreshToken, error) {
	t, ok := f.byHash[hash]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTokens) Revoke(_ context.Context, hash string) error {
	if t, ok := f.byHash[hash]; ok && !t.RevokedAt.Valid {
		t.RevokedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	for _, t := range f.byHash {
		if t.UserID == userID {
			t.RevokedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}
	return nil
}

func newAuthService() (*Service, *fakeUsers, *fakeTokens) {
	users := newFakeUsers()
	tokens := newFakeTokens()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(users, tokens, jwtService), users, tokens
}

func TestRegister(t *testing.T) {
	service, users, _ := newAuthService()

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Password: "correct-horse-battery",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized lowercase", resp.User.Email)
	}
	if resp.User.Role != user.RoleUser {
		t.Errorf("role = %s, want %s", resp.User.Role, user.RoleUser)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if _, ok := users.byEmail["alice@example.com"]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService()

	req := &RegisterRequest{Email: "bob@example.com", Password: "secret-password", Name: "Bob"}
	if _, err := service.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := service.Register(context.Background(), req); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	service, _, _ := newAuthService()

	if _, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "carol@example.com",
		Password: "secret-password",
		Name:     "Carol",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "carol@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Error("expected access token")
	}

	_, err = service.Login(context.Background(), &LoginRequest{
		Email:    "carol@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}

	_, err = service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSuspendedAccount(t *testing.T) {
	service, users, _ := newAuthService()

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "dave@example.com",
		Password: "secret-password",
		Name:     "Dave",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := users.UpdateSuspended(context.Background(), resp.User.ID, true); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	_, err = service.Login(context.Background(), &LoginRequest{
		Email:    "dave@example.com",
		Password: "secret-password",
	})
	if !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("Login() error = %v, want ErrAccountSuspended", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	service, _, tokens := newAuthService()

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "erin@example.com",
		Password: "secret-password",
		Name:     "Erin",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	refreshed, err := service.Refresh(context.Background(), resp.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.Tokens.RefreshToken == resp.Tokens.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is single-use
	if _, err := service.Refresh(context.Background(), resp.Tokens.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("Refresh() with used token error = %v, want ErrInvalidRefreshToken", err)
	}

	hash := jwt.HashRefreshToken(resp.Tokens.RefreshToken)
	if stored := tokens.byHash[hash]; stored == nil || !stored.RevokedAt.Valid {
		t.Error("used refresh token was not revoked in storage")
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	service, _, _ := newAuthService()
	if _, err := service.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("Refresh() error = %v, want ErrInvalidRefreshToken", err)
	}
}
