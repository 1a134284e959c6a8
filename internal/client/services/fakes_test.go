package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
	"github.com/stretchr/testify/require"
)

// calls records the names of the fake methods invoked, in order.
type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
}

func (c *calls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

/*************
 * Auth
 *************/

type fakeAuthAPI struct {
	calls

	loginRes *client.LoginResult
	loginErr error
	err      error

	lastRegister models.RegisterRequest
	lastReset    models.ResetPasswordRequest
	lastChange   models.ChangePasswordRequest
	lastForgot   models.ForgotPasswordRequest
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*client.LoginResult, error) {
	f.add("Login")
	return f.loginRes, f.loginErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	f.add("Register")
	f.lastRegister = req
	return f.err
}

func (f *fakeAuthAPI) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	f.add("ForgotPassword")
	f.lastForgot = req
	return f.err
}

func (f *fakeAuthAPI) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	f.add("ResetPassword")
	f.lastReset = req
	return f.err
}

func (f *fakeAuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	f.add("ChangePassword")
	f.lastChange = req
	return f.err
}

/*************
 * Ads
 *************/

type fakeAdsAPI struct {
	calls

	ads     []models.Ad
	created *models.CreatedAd
	err     error

	lastUserID models.ID
	lastNewAd  models.NewAd
	lastEdit   models.AdEdit
}

func (f *fakeAdsAPI) CreateAd(ctx context.Context, ad models.NewAd) (*models.CreatedAd, error) {
	f.add("CreateAd")
	f.lastNewAd = ad
	return f.created, f.err
}

func (f *fakeAdsAPI) ListUserAds(ctx context.Context, userID models.ID) ([]models.Ad, error) {
	f.add("ListUserAds")
	f.lastUserID = userID
	return f.ads, f.err
}

func (f *fakeAdsAPI) EditAd(ctx context.Context, adID models.ID, edit models.AdEdit) error {
	f.add("EditAd")
	f.lastEdit = edit
	return f.err
}

func (f *fakeAdsAPI) DeleteAd(ctx context.Context, adID models.ID) error {
	f.add("DeleteAd")
	return f.err
}

func (f *fakeAdsAPI) DeleteImage(ctx context.Context, imageID models.ID) error {
	f.add("DeleteImage")
	return f.err
}

func (f *fakeAdsAPI) DeleteAllImages(ctx context.Context, adID models.ID) error {
	f.add("DeleteAllImages")
	return f.err
}

/*************
 * Admin
 *************/

type fakeAdminAPI struct {
	calls

	users    []models.UserProfile
	ads      []models.Ad
	usersErr error
	adsErr   error
	err      error

	lastDelete  models.DeleteUserRequest
	lastPromote models.PromoteAdminRequest
	lastCreate  models.CreateAdminRequest
}

func (f *fakeAdminAPI) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	f.add("ListUsers")
	return f.users, f.usersErr
}

func (f *fakeAdminAPI) DeleteUser(ctx context.Context, userID models.ID, req models.DeleteUserRequest) error {
	f.add("DeleteUser")
	f.lastDelete = req
	return f.err
}

func (f *fakeAdminAPI) BlockUser(ctx context.Context, userID models.ID) error {
	f.add("BlockUser")
	return f.err
}

func (f *fakeAdminAPI) UnblockUser(ctx context.Context, userID models.ID) error {
	f.add("UnblockUser")
	return f.err
}

func (f *fakeAdminAPI) SetUserPassword(ctx context.Context, userID models.ID, req models.SetPasswordRequest) error {
	f.add("SetUserPassword")
	return f.err
}

func (f *fakeAdminAPI) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) error {
	f.add("CreateAdmin")
	f.lastCreate = req
	return f.err
}

func (f *fakeAdminAPI) PromoteAdmin(ctx context.Context, req models.PromoteAdminRequest) error {
	f.add("PromoteAdmin")
	f.lastPromote = req
	return f.err
}

func (f *fakeAdminAPI) ListAds(ctx context.Context) ([]models.Ad, error) {
	f.add("ListAds")
	return f.ads, f.adsErr
}

func (f *fakeAdminAPI) AdminDeleteAd(ctx context.Context, adID models.ID) error {
	f.add("AdminDeleteAd")
	return f.err
}

func (f *fakeAdminAPI) BlockAd(ctx context.Context, adID models.ID) error {
	f.add("BlockAd")
	return f.err
}

func (f *fakeAdminAPI) UnblockAd(ctx context.Context, adID models.ID) error {
	f.add("UnblockAd")
	return f.err
}

func (f *fakeAdminAPI) DeleteAdImage(ctx context.Context, adID, imageID models.ID) error {
	f.add("DeleteAdImage")
	return f.err
}

/*************
 * Contact
 *************/

type fakeContactAPI struct {
	calls
	err  error
	last models.ContactMessage
}

func (f *fakeContactAPI) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	f.add("SubmitContact")
	f.last = msg
	return f.err
}

/*************
 * helpers
 *************/

func newSession(t *testing.T) *session.Store {
	t.Helper()
	s := session.New(session.NewMemoryStorage(), nil)
	require.NoError(t, s.Restore(context.Background()))
	return s
}

func loggedIn(t *testing.T, user models.UserProfile) *session.Store {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.Login(context.Background(), "tok", user))
	return s
}
