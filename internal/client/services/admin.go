package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/panel"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
	"github.com/dmitrijs2005/classifieds/internal/logging"
	"golang.org/x/sync/errgroup"
)

// AdminService moderates users and ads.
//
// Every mutation sends its request first and, only when it succeeds, patches
// the local panel State with the matching reducer instead of reloading. Two
// admins working at once can therefore see stale data until the next Load.
type AdminService interface {
	// Load fetches users and ads concurrently and replaces the panel state.
	// If either request fails nothing is replaced.
	Load(ctx context.Context) error
	State() *panel.State

	BlockUser(ctx context.Context, id models.ID) error
	UnblockUser(ctx context.Context, id models.ID) error
	// DeleteUser also drops the user's ads from the local ad list. The admin
	// password is required, and forwarded, only when the target is an admin.
	DeleteUser(ctx context.Context, id models.ID, adminPassword string) error
	SetPassword(ctx context.Context, id models.ID, password, confirm string) error
	CreateAdmin(ctx context.Context, req models.CreateAdminRequest, confirm string) error
	PromoteAdmin(ctx context.Context, email string) error

	BlockAd(ctx context.Context, id models.ID) error
	UnblockAd(ctx context.Context, id models.ID) error
	DeleteAd(ctx context.Context, id models.ID) error
	DeleteAdImage(ctx context.Context, adID, imageID models.ID) error

	// Export writes the current panel state to an .xlsx workbook.
	Export(ctx context.Context, path string) error
}

type adminService struct {
	api     client.AdminAPI
	session *session.Store
	state   *panel.State
	log     logging.Logger
}

func NewAdminService(api client.AdminAPI, s *session.Store, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	return &adminService{api: api, session: s, state: &panel.State{}, log: log}
}

func (a *adminService) State() *panel.State { return a.state }

// authorize rejects callers that are not a restored, logged-in admin.
func (a *adminService) authorize() error {
	switch {
	case !a.session.Hydrated():
		return ErrNotHydrated
	case !a.session.IsAuthenticated():
		return ErrNotAuthenticated
	case !a.session.IsAdmin():
		return ErrNotAdmin
	}
	return nil
}

func (a *adminService) Load(ctx context.Context) error {
	if err := a.authorize(); err != nil {
		return err
	}

	var (
		users []models.UserProfile
		ads   []models.Ad
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = a.api.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ads, err = a.api.ListAds(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load admin panel: %w", err)
	}

	a.state.Replace(users, ads)
	a.log.Debug(ctx, "admin panel loaded", "users", len(users), "ads", len(ads))
	return nil
}

// mutate runs call and, if it succeeds, apply.
func (a *adminService) mutate(ctx context.Context, action string, call func() error, apply func()) error {
	if err := a.authorize(); err != nil {
		return err
	}
	if err := call(); err != nil {
		return err
	}
	apply()
	a.log.Info(ctx, "admin action applied", "action", action)
	return nil
}

func (a *adminService) setUserBlocked(ctx context.Context, id models.ID, blocked bool) error {
	call := a.api.UnblockUser
	action := "unblock user"
	if blocked {
		call, action = a.api.BlockUser, "block user"
	}
	return a.mutate(ctx, action,
		func() error { return call(ctx, id) },
		func() {
			a.state.UpdateUsers(func(u []models.UserProfile) []models.UserProfile {
				return panel.SetUserBlocked(u, id, blocked)
			})
		})
}

func (a *adminService) BlockUser(ctx context.Context, id models.ID) error {
	return a.setUserBlocked(ctx, id, true)
}

func (a *adminService) UnblockUser(ctx context.Context, id models.ID) error {
	return a.setUserBlocked(ctx, id, false)
}

func (a *adminService) DeleteUser(ctx context.Context, id models.ID, adminPassword string) error {
	target, known := a.state.FindUser(id)

	var req models.DeleteUserRequest
	if known && target.IsAdmin {
		if adminPassword == "" {
			return invalid("deleting an administrator requires your admin password")
		}
		req.AdminPassword = adminPassword
	}

	return a.mutate(ctx, "delete user",
		func() error { return a.api.DeleteUser(ctx, id, req) },
		func() {
			a.state.UpdateUsers(func(u []models.UserProfile) []models.UserProfile {
				return panel.RemoveUser(u, id)
			})
			if known && target.Email != "" {
				a.state.UpdateAds(func(ads []models.Ad) []models.Ad {
					return panel.RemoveAdsByOwner(ads, target.Email)
				})
			}
		})
}

func (a *adminService) SetPassword(ctx context.Context, id models.ID, password, confirm string) error {
	req := models.SetPasswordRequest{NewPassword: password, NewPasswordConfirm: confirm}
	if err := check(req); err != nil {
		return err
	}
	if err := checkPassword(password); err != nil {
		return err
	}
	return a.mutate(ctx, "set password",
		func() error { return a.api.SetUserPassword(ctx, id, req) },
		func() {})
}

func (a *adminService) CreateAdmin(ctx context.Context, req models.CreateAdminRequest, confirm string) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	if err := check(req); err != nil {
		return err
	}
	if req.Password != confirm {
		return invalid("passwords do not match")
	}
	if err := checkPassword(req.Password); err != nil {
		return err
	}

	err := a.mutate(ctx, "create admin",
		func() error { return a.api.CreateAdmin(ctx, req) },
		func() {})
	if err != nil {
		return err
	}
	return a.reload(ctx)
}

func (a *adminService) PromoteAdmin(ctx context.Context, email string) error {
	req := models.PromoteAdminRequest{Email: strings.TrimSpace(email)}
	if err := check(req); err != nil {
		return err
	}

	err := a.mutate(ctx, "promote admin",
		func() error { return a.api.PromoteAdmin(ctx, req) },
		func() {
			a.state.UpdateUsers(func(u []models.UserProfile) []models.UserProfile {
				return panel.SetUserAdmin(u, req.Email)
			})
		})
	if err != nil {
		return err
	}
	return a.reload(ctx)
}

// reload refreshes the panel after an action whose effect cannot be patched
// locally. The action itself already succeeded.
func (a *adminService) reload(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		return fmt.Errorf("action succeeded but the panel could not be refreshed: %w", err)
	}
	return nil
}

func (a *adminService) setAdStatus(ctx context.Context, id models.ID, block bool) error {
	call, status, action := a.api.UnblockAd, models.AdStatusActive, "unblock ad"
	if block {
		call, status, action = a.api.BlockAd, models.AdStatusReview, "block ad"
	}
	return a.mutate(ctx, action,
		func() error { return call(ctx, id) },
		func() {
			a.state.UpdateAds(func(ads []models.Ad) []models.Ad {
				return panel.SetAdStatus(ads, id, status)
			})
		})
}

// BlockAd sends the ad back to review.
func (a *adminService) BlockAd(ctx context.Context, id models.ID) error {
	return a.setAdStatus(ctx, id, true)
}

func (a *adminService) UnblockAd(ctx context.Context, id models.ID) error {
	return a.setAdStatus(ctx, id, false)
}

func (a *adminService) DeleteAd(ctx context.Context, id models.ID) error {
	return a.mutate(ctx, "delete ad",
		func() error { return a.api.AdminDeleteAd(ctx, id) },
		func() {
			a.state.UpdateAds(func(ads []models.Ad) []models.Ad { return panel.RemoveAd(ads, id) })
		})
}

func (a *adminService) DeleteAdImage(ctx context.Context, adID, imageID models.ID) error {
	return a.mutate(ctx, "delete ad image",
		func() error { return a.api.DeleteAdImage(ctx, adID, imageID) },
		func() {
			a.state.UpdateAds(func(ads []models.Ad) []models.Ad {
				return panel.RemoveAdImage(ads, adID, imageID)
			})
		})
}
