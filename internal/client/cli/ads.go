package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/filex"
)

// readUploads loads the image files named by paths.
func readUploads(paths []string) ([]models.Upload, error) {
	uploads := make([]models.Upload, 0, len(paths))
	for _, p := range paths {
		name, data, err := filex.ReadUpload(p)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, models.Upload{Filename: name, Data: data})
	}
	return uploads, nil
}

func (a *App) printAd(ad models.Ad) {
	a.printf("[%s] %s (%s)\n", ad.ID, ad.Title, ad.Status.Normalize())
	if ad.Description != "" {
		a.printf("    %s\n", ad.Description)
	}
	for _, img := range ad.Images {
		a.printf("    image %s: %s\n", img.ID, a.images.ImageURL(img.URL))
	}
}

// MyAds lists the ads of the logged-in user.
func (a *App) MyAds(ctx context.Context, _ []string) error {
	ads, err := a.adService.ListMine(ctx)
	if err != nil {
		return err
	}
	if len(ads) == 0 {
		printlnFn("You have no ads yet.")
		return nil
	}
	for _, ad := range ads {
		a.printAd(ad)
	}
	return nil
}

// NewAd prompts for the ad texts and the image files to upload.
func (a *App) NewAd(ctx context.Context, _ []string) error {
	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (up to %d characters)", models.MaxAdTitle), a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, fmt.Sprintf("Description (up to %d characters)", models.MaxAdDescription), a.out)
	if err != nil {
		return err
	}
	paths, err := getLines(a.reader, fmt.Sprintf("Image files, one path per line (1 to %d)", models.MaxAdImages), a.out)
	if err != nil {
		return err
	}
	images, err := readUploads(paths)
	if err != nil {
		return err
	}

	created, err := a.adService.Create(ctx, title, desc, images)
	if err != nil {
		return err
	}

	a.printf("Ad %s created (%s)\n", created.ID, created.Status.Normalize())
	for _, msg := range []string{created.Message, created.Notice} {
		if msg != "" {
			printlnFn(msg)
		}
	}
	return nil
}

// findMine returns the user's ad with the given id.
func (a *App) findMine(ctx context.Context, id models.ID) (models.Ad, error) {
	ads, err := a.adService.ListMine(ctx)
	if err != nil {
		return models.Ad{}, err
	}
	for _, ad := range ads {
		if ad.ID == id {
			return ad, nil
		}
	}
	return models.Ad{}, fmt.Errorf("you have no ad with id %s", id)
}

// EditAd replaces the texts of an ad and appends new images. An empty answer
// keeps the current text.
func (a *App) EditAd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("editad <ad-id>")
	}
	ad, err := a.findMine(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}

	edit := models.AdEdit{Title: ad.Title, Description: ad.Description}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", ad.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		edit.Title = title
	}
	desc, err := getMultiline(a.reader, "Description (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		edit.Description = desc
	}

	left := models.MaxAdImages - len(ad.Images)
	paths, err := getLines(a.reader, fmt.Sprintf("New image files, one path per line (%d more allowed)", left), a.out)
	if err != nil {
		return err
	}
	if edit.NewImages, err = readUploads(paths); err != nil {
		return err
	}

	if err := a.adService.Edit(ctx, ad, edit); err != nil {
		return err
	}
	printlnFn("Ad updated")
	return nil
}

func (a *App) DeleteAd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("delad <ad-id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete ad %s?", args[0]), a.out) {
		printlnFn("Cancelled")
		return nil
	}
	if err := a.adService.Delete(ctx, models.ID(args[0])); err != nil {
		return err
	}
	printlnFn("Ad deleted")
	return nil
}

func (a *App) DeleteImage(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("delimg <image-id>")
	}
	if err := a.adService.DeleteImage(ctx, models.ID(args[0])); err != nil {
		return err
	}
	printlnFn("Image deleted")
	return nil
}

func (a *App) ClearImages(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("clearimgs <ad-id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete every image of ad %s?", args[0]), a.out) {
		printlnFn("Cancelled")
		return nil
	}
	if err := a.adService.DeleteAllImages(ctx, models.ID(args[0])); err != nil {
		return err
	}
	printlnFn("Images deleted")
	return nil
}

// SaveImage downloads an ad image into the download directory.
func (a *App) SaveImage(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("image <url-or-path>")
	}
	ref := args[0]

	data, err := a.images.FetchImage(ctx, ref)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubdDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filex.SafeName(ref, "image"))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	a.printf("Saved %d bytes to %s\n", len(data), path)
	return nil
}
