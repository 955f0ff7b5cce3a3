package service_test

import (
	"context"
	"testing"
	"time"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/internal/server/service"
	"evote-service/internal/server/testutil"
	"evote-service/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.Password, "the password must be stored hashed")

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, response.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, response.ErrInvalidCredentials)
}

func TestIssueTokenClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)

	user := testutil.CreateUser(t, db, "alice")
	signed, err := svc.IssueToken(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}
