package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/uai-sistemas/planning-api/internal/models"
	"github.com/uai-sistemas/planning-api/pkg/config"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
)

type userReaderStub struct {
	user       *models.User
	lastLogins []string
}

func (s *userReaderStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, sql.ErrNoRows
	}
	cp := *s.user
	return &cp, nil
}

func (s *userReaderStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogins = append(s.lastLogins, id)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "planning-api"}
}

func testUser(t *testing.T, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "planner@uai.edu",
		PasswordHash: string(hash),
		FullName:     "Ana Planner",
		Role:         models.RolePlanner,
		Active:       true,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	users := &userReaderStub{user: testUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), zap.NewNop())

	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "planner@uai.edu", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, models.RolePlanner, result.User.Role)
	assert.Equal(t, []string{"user-1"}, users.lastLogins)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RolePlanner, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	users := &userReaderStub{user: testUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "planner@uai.edu", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials, err)
	assert.Empty(t, users.lastLogins)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&userReaderStub{}, testJWTConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@uai.edu", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials, err)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := testUser(t, "s3cret")
	user.Active = false
	svc := NewAuthService(&userReaderStub{user: user}, testJWTConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "planner@uai.edu", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount, err)
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(&userReaderStub{user: testUser(t, "s3cret")}, testJWTConfig(), zap.NewNop())
	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "planner@uai.edu", Password: "s3cret"})
	require.NoError(t, err)

	other := NewAuthService(&userReaderStub{}, config.JWTConfig{Secret: "different", Expiration: time.Hour}, zap.NewNop())
	_, err = other.ValidateToken(result.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	users := &userReaderStub{user: testUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), zap.NewNop())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "planner@uai.edu", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.AccessToken)
	require.Error(t, err)
}
