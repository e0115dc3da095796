package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/chocokroko/chocokroko-backend/pkg/auth"
	"github.com/chocokroko/chocokroko-backend/pkg/config"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/security"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "chocokroko-test",
	ExpirationMinutes: 15,
}

type stubUserRepo struct {
	users     map[string]*models.AdminUser
	lastLogin *time.Time
	created   *models.AdminUser
	createErr error
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *models.AdminUser) (*models.AdminUser, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	user.ID = uuid.New()
	r.created = user
	return user, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	r.lastLogin = &at
	return nil
}

type stubSessionManager struct {
	generated string
	revoked   string
}

func (m *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	m.generated = accessID
	return "refresh-token", nil
}

func (m *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	m.revoked = accessID
	return nil
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager, allowSignup bool) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTCfg,
		PasswordConfig: testPasswordCfg,
		AllowSignup:    allowSignup,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func adminWithPassword(t *testing.T, email, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Back Office",
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.AdminUser{
		"admin@example.com": adminWithPassword(t, "admin@example.com", "chocolate123"),
	}}
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions, false)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: " Admin@Example.com ", Password: "chocolate123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken != "refresh-token" {
		t.Fatal("expected token pair")
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role, got %s", claims.Role)
	}
	if claims.ID != sessions.generated {
		t.Fatal("jti must match the stored session access id")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.AdminUser{
		"admin@example.com": adminWithPassword(t, "admin@example.com", "chocolate123"),
	}}
	svc := newTestService(t, repo, &stubSessionManager{}, false)
	ctx := context.Background()

	cases := []LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "chocolate123"},
		{Email: "", Password: "chocolate123"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %q, got %v", req.Email, err)
		}
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	user := adminWithPassword(t, "admin@example.com", "chocolate123")
	user.IsActive = false
	repo := &stubUserRepo{users: map[string]*models.AdminUser{user.Email: user}}
	svc := newTestService(t, repo, &stubSessionManager{}, false)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "chocolate123"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newTestService(t, &stubUserRepo{users: map[string]*models.AdminUser{}}, sessions, false)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-id" {
		t.Fatal("expected session to be revoked")
	}
}

func TestRegisterGatedBehindSignupFlag(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.AdminUser{}}
	svc := newTestService(t, repo, &stubSessionManager{}, false)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "chocolate123",
		FullName: "New Admin",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRegisterCreatesHashedUser(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.AdminUser{}}
	svc := newTestService(t, repo, &stubSessionManager{}, true)

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Email:    " New@Example.com ",
		Password: "chocolate123",
		FullName: " New Admin ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.Email != "new@example.com" || dto.FullName != "New Admin" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if repo.created == nil || repo.created.PasswordHash == "chocolate123" {
		t.Fatal("password must be stored hashed")
	}
	ok, err := security.VerifyPassword("chocolate123", repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify: %v", err)
	}
}
