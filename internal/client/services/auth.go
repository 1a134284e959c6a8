// Package services contains the use cases of the classifieds client. Each
// service validates its input locally, calls the backend through the narrow
// client interfaces and keeps the session or the admin panel in sync.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
)

// Destination is the view a user lands on after logging in.
type Destination string

const (
	DestinationDashboard Destination = "dashboard"
	DestinationAdmin     Destination = "admin"
)

// AuthService covers account operations.
//
// Contract:
//   - Login: negotiate with the backend, store the session, report where to go.
//   - Logout: forget the session locally.
//   - Register, ForgotPassword, ResetPassword: anonymous account flows.
//   - ChangePassword: requires a logged-in user.
//
// Local checks (matching confirmations, the password policy, required
// fields) fail with ErrInvalidInput before any request is made.
type AuthService interface {
	Login(ctx context.Context, email, password string) (Destination, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
}

type authService struct {
	api     client.AuthAPI
	session *session.Store
}

func NewAuthService(api client.AuthAPI, s *session.Store) AuthService {
	return &authService{api: api, session: s}
}

func (a *authService) Login(ctx context.Context, email, password string) (Destination, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", invalid("email and password are required")
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return "", err
	}

	if err := a.session.Login(ctx, res.Token, res.User); err != nil {
		return "", err
	}

	if res.User.IsAdmin {
		return DestinationAdmin, nil
	}
	return DestinationDashboard, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.EmailConfirm = strings.TrimSpace(req.EmailConfirm)
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)

	if err := check(req); err != nil {
		return err
	}
	if err := checkPassword(req.Password); err != nil {
		return err
	}
	return a.api.Register(ctx, req)
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	req := models.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := check(req); err != nil {
		return err
	}
	return a.api.ForgotPassword(ctx, req)
}

func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return invalid("reset token is missing or invalid")
	}
	if err := check(req); err != nil {
		return err
	}
	if err := checkPassword(req.NewPassword); err != nil {
		return err
	}
	return a.api.ResetPassword(ctx, req)
}

func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if !a.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := check(req); err != nil {
		return err
	}
	if err := checkPassword(req.NewPassword); err != nil {
		return err
	}
	if err := a.api.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
