package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
)

// AdService manages the ads of the logged-in user.
type AdService interface {
	ListMine(ctx context.Context) ([]models.Ad, error)
	Create(ctx context.Context, title, description string, images []models.Upload) (*models.CreatedAd, error)
	// Edit updates ad with the new texts and appends edit.NewImages. The
	// total image count must stay within models.MaxAdImages.
	Edit(ctx context.Context, ad models.Ad, edit models.AdEdit) error
	Delete(ctx context.Context, adID models.ID) error
	DeleteImage(ctx context.Context, imageID models.ID) error
	DeleteAllImages(ctx context.Context, adID models.ID) error
}

type adService struct {
	api     client.AdsAPI
	session *session.Store
}

func NewAdService(api client.AdsAPI, s *session.Store) AdService {
	return &adService{api: api, session: s}
}

func (a *adService) currentUser() (models.UserProfile, error) {
	u, ok := a.session.User()
	if !ok || u.ID.IsZero() {
		return models.UserProfile{}, ErrNotAuthenticated
	}
	return u, nil
}

func (a *adService) ListMine(ctx context.Context) ([]models.Ad, error) {
	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	return a.api.ListUserAds(ctx, u.ID)
}

func (a *adService) Create(ctx context.Context, title, description string, images []models.Upload) (*models.CreatedAd, error) {
	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}

	ad := models.NewAd{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		UserID:      u.ID,
		Images:      images,
	}
	if err := check(ad); err != nil {
		return nil, err
	}

	created, err := a.api.CreateAd(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	return created, nil
}

func (a *adService) Edit(ctx context.Context, ad models.Ad, edit models.AdEdit) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	edit.Title = strings.TrimSpace(edit.Title)
	edit.Description = strings.TrimSpace(edit.Description)
	if err := check(edit); err != nil {
		return err
	}
	if total := len(ad.Images) + len(edit.NewImages); total > models.MaxAdImages {
		return invalid(fmt.Sprintf("an ad can have at most %d images, this edit would make %d", models.MaxAdImages, total))
	}

	if err := a.api.EditAd(ctx, ad.ID, edit); err != nil {
		return fmt.Errorf("edit ad: %w", err)
	}
	return nil
}

func (a *adService) Delete(ctx context.Context, adID models.ID) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	return a.api.DeleteAd(ctx, adID)
}

func (a *adService) DeleteImage(ctx context.Context, imageID models.ID) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	return a.api.DeleteImage(ctx, imageID)
}

func (a *adService) DeleteAllImages(ctx context.Context, adID models.ID) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	return a.api.DeleteAllImages(ctx, adID)
}
