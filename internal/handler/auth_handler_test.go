package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/middleware"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type fakeAuthService struct {
	lastLogin   models.LoginRequest
	loginResp   *models.LoginResponse
	loginErr    error
	profile     *models.AccountView
	profileErr  error
	profileUser string
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.lastLogin = req
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) Profile(_ context.Context, userID string) (*models.AccountView, error) {
	f.profileUser = userID
	return f.profile, f.profileErr
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	svc := &fakeAuthService{loginResp: &models.LoginResponse{User: models.AccountView{UserID: "admin"}, Token: "tok"}}
	h := NewAuthHandler(svc)

	c, w := newGinContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{"user_id":"admin","password":"secret"}`), "application/json")
	c.Request.RemoteAddr = "10.0.0.7:5000"
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Login berhasil", env.Message)
	assert.Contains(t, string(env.Data), `"token":"tok"`)
	assert.Equal(t, "admin", svc.lastLogin.UserID)
	assert.Equal(t, "10.0.0.7", svc.lastLogin.IP)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	c, w := newGinContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{`), "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "User ID dan password harus diisi", env.Message)
}

func TestAuthHandlerLoginPropagatesServiceError(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginErr: appErrors.ErrTooManyRequests})

	c, w := newGinContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{"user_id":"admin","password":"x"}`), "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuthHandlerProfile(t *testing.T) {
	svc := &fakeAuthService{profile: &models.AccountView{UserID: "admin", Nama: "Admin"}}
	h := NewAuthHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/auth/profile", nil, "")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin})
	h.Profile(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", svc.profileUser)
}

func TestAuthHandlerProfileWithoutClaims(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	c, w := newGinContext(http.MethodGet, "/api/auth/profile", nil, "")
	h.Profile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
