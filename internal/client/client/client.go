package client

import (
	"context"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// TokenSource yields the current access token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// LoginResult is the outcome of a successful login negotiation.
type LoginResult struct {
	Token string
	User  models.UserProfile
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
}

type AdsAPI interface {
	CreateAd(ctx context.Context, ad models.NewAd) (*models.CreatedAd, error)
	ListUserAds(ctx context.Context, userID models.ID) ([]models.Ad, error)
	EditAd(ctx context.Context, adID models.ID, edit models.AdEdit) error
	DeleteAd(ctx context.Context, adID models.ID) error
	DeleteImage(ctx context.Context, imageID models.ID) error
	DeleteAllImages(ctx context.Context, adID models.ID) error
}

type AdminAPI interface {
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
	DeleteUser(ctx context.Context, userID models.ID, req models.DeleteUserRequest) error
	BlockUser(ctx context.Context, userID models.ID) error
	UnblockUser(ctx context.Context, userID models.ID) error
	SetUserPassword(ctx context.Context, userID models.ID, req models.SetPasswordRequest) error
	CreateAdmin(ctx context.Context, req models.CreateAdminRequest) error
	PromoteAdmin(ctx context.Context, req models.PromoteAdminRequest) error

	ListAds(ctx context.Context) ([]models.Ad, error)
	AdminDeleteAd(ctx context.Context, adID models.ID) error
	BlockAd(ctx context.Context, adID models.ID) error
	UnblockAd(ctx context.Context, adID models.ID) error
	DeleteAdImage(ctx context.Context, adID, imageID models.ID) error
}

type ContactAPI interface {
	SubmitContact(ctx context.Context, msg models.ContactMessage) error
}

// ImageAPI resolves and downloads ad images.
type ImageAPI interface {
	ImageURL(pathOrURL string) string
	FetchImage(ctx context.Context, pathOrURL string) ([]byte, error)
}

var (
	_ AuthAPI    = (*HTTPClient)(nil)
	_ AdsAPI     = (*HTTPClient)(nil)
	_ AdminAPI   = (*HTTPClient)(nil)
	_ ContactAPI = (*HTTPClient)(nil)
	_ ImageAPI   = (*HTTPClient)(nil)
)
