package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

type fakeSessionSrv struct {
	loggedOut string
	loginErr  error
}

func (f *fakeSessionSrv) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{AccessToken: "token", Faculty: models.FacultyInfo{Email: req.Email}}, nil
}

func (f *fakeSessionSrv) Logout(_ context.Context, email string) error {
	f.loggedOut = email
	return nil
}

func (f *fakeSessionSrv) Get(_ context.Context, email string) (*models.Session, error) {
	if email == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.Session{Email: email}, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(&fakeSessionSrv{})

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"faculty@university.edu","password":"secret"}`)
	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"access_token":"token"`)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeSessionSrv{loginErr: appErrors.ErrInvalidCredentials})

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"x@y.z","password":"nope"}`)
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)
}

func TestAuthHandlerLogoutRequiresFaculty(t *testing.T) {
	srv := &fakeSessionSrv{}
	handler := NewAuthHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", "")
	handler.Logout(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, _ = newTestContext(http.MethodPost, "/auth/logout", "")
	asFaculty(c, "faculty@university.edu")
	handler.Logout(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "faculty@university.edu", srv.loggedOut)
}

func TestAuthHandlerSession(t *testing.T) {
	handler := NewAuthHandler(&fakeSessionSrv{})

	c, rec := newTestContext(http.MethodGet, "/auth/session", "")
	asFaculty(c, "faculty@university.edu")
	handler.Session(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
