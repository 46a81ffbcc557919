package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/pkg/config"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type mockUserRepo struct {
	users         map[string]*models.User
	byEmail       map[string]string
	refreshTokens map[string]*models.RefreshToken
	nextID        int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:         make(map[string]*models.User),
		byEmail:       make(map[string]string),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if id, ok := m.byEmail[email]; ok {
		cp := *m.users[id]
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.nextID++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	cp := *user
	m.users[user.ID] = &cp
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &ts
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	return nil
}

func (m *mockUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.nextID++
	token.ID = fmt.Sprintf("rt-%d", m.nextID)
	cp := *token
	m.refreshTokens[token.Token] = &cp
	return nil
}

func (m *mockUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if rt, ok := m.refreshTokens[token]; ok {
		cp := *rt
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, rt := range m.refreshTokens {
		if rt.ID == id {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	for _, rt := range m.refreshTokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

type mockProfileCreator struct {
	created []models.Profile
}

func (m *mockProfileCreator) Create(ctx context.Context, profile *models.Profile) error {
	m.created = append(m.created, *profile)
	return nil
}

func newAuthFixture() (*AuthService, *mockUserRepo, *mockProfileCreator) {
	users := newMockUserRepo()
	profiles := &mockProfileCreator{}
	svc := NewAuthService(users, profiles, config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "scholarseek-test",
	}, nil, nil)
	return svc, users, profiles
}

func TestRegisterStudentCreatesUserAndProfile(t *testing.T) {
	svc, users, profiles := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "student@example.com",
		Password: "secret1",
		FullName: "Asha Verma",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)

	require.Len(t, profiles.created, 1)
	assert.Equal(t, user.ID, profiles.created[0].ID)
	assert.False(t, profiles.created[0].IsOrg)
	assert.Len(t, users.users, 1)
}

func TestRegisterOrganizationStartsUnapproved(t *testing.T) {
	svc, _, profiles := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:          "org@example.com",
		Password:       "secret1",
		FullName:       "Acme Trust",
		IsOrganization: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganization, user.Role)
	require.Len(t, profiles.created, 1)
	assert.True(t, profiles.created[0].IsOrg)
	assert.False(t, profiles.created[0].IsOrgApproved)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := RegisterRequest{Email: "dup@example.com", Password: "secret1", FullName: "First"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "student@example.com",
		Password: "secret1",
		FullName: "Asha Verma",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "student@example.com",
		Password: "secret1",
		FullName: "Asha Verma",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Email:        "frozen@example.com",
		PasswordHash: string(hash),
		FullName:     "Frozen",
		Role:         models.RoleStudent,
		Active:       false,
	}))

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "frozen@example.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "student@example.com",
		Password: "secret1",
		FullName: "Asha Verma",
	})
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	old := users.refreshTokens[login.RefreshToken]
	require.NotNil(t, old)
	assert.True(t, old.Revoked)

	// The revoked token cannot be replayed.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "student@example.com",
		Password: "secret1",
		FullName: "Asha Verma",
	})
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		OldPassword: "secret1",
		NewPassword: "fresher",
	})
	require.NoError(t, err)

	assert.True(t, users.refreshTokens[login.RefreshToken].Revoked)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@example.com",
		Password: "fresher",
	})
	assert.NoError(t, err)
}
