package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/pwpolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPassword = "Str0ng!Pass"

func TestAuthService_LoginRoutesByRole(t *testing.T) {
	tests := []struct {
		name string
		user models.UserProfile
		want Destination
	}{
		{"regular user", models.UserProfile{ID: "1", Email: "a@x.com"}, DestinationDashboard},
		{"admin", models.UserProfile{ID: "2", Email: "r@x.com", IsAdmin: true}, DestinationAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuthAPI{loginRes: &client.LoginResult{Token: "tok", User: tt.user}}
			s := newSession(t)

			dest, err := NewAuthService(api, s).Login(context.Background(), " a@x.com ", "pw")
			require.NoError(t, err)
			assert.Equal(t, tt.want, dest)
			assert.True(t, s.IsAuthenticated())
			assert.Equal(t, "tok", s.Token())
		})
	}
}

func TestAuthService_LoginFailureLeavesSessionEmpty(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &client.LoginError{Status: 401, Message: "Invalid credentials"}}
	s := newSession(t)

	_, err := NewAuthService(api, s).Login(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.False(t, s.IsAuthenticated())
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	api := &fakeAuthAPI{}
	_, err := NewAuthService(api, newSession(t)).Login(context.Background(), "  ", "pw")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, api.list())
}

func TestAuthService_Logout(t *testing.T) {
	s := loggedIn(t, models.UserProfile{ID: "1"})
	require.NoError(t, NewAuthService(&fakeAuthAPI{}, s).Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "a@x.com",
		EmailConfirm:    "a@x.com",
		Password:        goodPassword,
		PasswordConfirm: goodPassword,
		Name:            "Ann",
		Surname:         "Lee",
	}
}

func TestAuthService_RegisterLocalChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		policy bool
	}{
		{"email mismatch", func(r *models.RegisterRequest) { r.EmailConfirm = "b@x.com" }, false},
		{"password mismatch", func(r *models.RegisterRequest) { r.PasswordConfirm = "Other!Pass1" }, false},
		{"bad email", func(r *models.RegisterRequest) { r.Email, r.EmailConfirm = "nope", "nope" }, false},
		{"missing name", func(r *models.RegisterRequest) { r.Name = " " }, false},
		{"weak password", func(r *models.RegisterRequest) { r.Password, r.PasswordConfirm = "weakpass", "weakpass" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuthAPI{}
			req := validRegister()
			tt.mutate(&req)

			err := NewAuthService(api, newSession(t)).Register(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.policy, errors.Is(err, pwpolicy.ErrPolicy))
			assert.Empty(t, api.list(), "no request on local failure")
		})
	}
}

func TestAuthService_RegisterSends(t *testing.T) {
	api := &fakeAuthAPI{}
	req := validRegister()
	req.Email, req.EmailConfirm = " a@x.com", "a@x.com "

	require.NoError(t, NewAuthService(api, newSession(t)).Register(context.Background(), req))
	assert.Equal(t, "a@x.com", api.lastRegister.Email)
	assert.Equal(t, []string{"Register"}, api.list())
}

func TestAuthService_ForgotPassword(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, newSession(t))

	require.ErrorIs(t, svc.ForgotPassword(context.Background(), "not-an-email"), ErrInvalidInput)
	require.NoError(t, svc.ForgotPassword(context.Background(), "a@x.com"))
	assert.Equal(t, "a@x.com", api.lastForgot.Email)
}

func TestAuthService_ResetPassword(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, newSession(t))
	ctx := context.Background()

	err := svc.ResetPassword(ctx, models.ResetPasswordRequest{NewPassword: goodPassword, NewPasswordConfirm: goodPassword})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: goodPassword, NewPasswordConfirm: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: "short", NewPasswordConfirm: "short"})
	require.ErrorIs(t, err, pwpolicy.ErrPolicy)
	assert.Empty(t, api.list())

	require.NoError(t, svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: goodPassword, NewPasswordConfirm: goodPassword}))
	assert.Equal(t, "t", api.lastReset.Token)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	req := models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: goodPassword, NewPasswordConfirm: goodPassword}

	api := &fakeAuthAPI{}
	err := NewAuthService(api, newSession(t)).ChangePassword(ctx, req)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	svc := NewAuthService(api, loggedIn(t, models.UserProfile{ID: "1"}))

	bad := req
	bad.CurrentPassword = ""
	require.ErrorIs(t, svc.ChangePassword(ctx, bad), ErrInvalidInput)
	assert.Empty(t, api.list())

	require.NoError(t, svc.ChangePassword(ctx, req))
	assert.Equal(t, "old", api.lastChange.CurrentPassword)

	api.err = &client.StatusError{Status: 401, Message: "not authenticated, please log in again"}
	err = svc.ChangePassword(ctx, req)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
