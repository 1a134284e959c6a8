package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetUsers = "Users"
	sheetAds   = "Ads"
)

var (
	userHeader = []any{"ID", "Email", "Name", "Surname", "Admin", "Blocked"}
	adHeader   = []any{"ID", "Title", "Description", "Owner", "Status", "Images"}
)

func (a *adminService) Export(ctx context.Context, path string) error {
	if err := a.authorize(); err != nil {
		return err
	}
	if !a.state.Loaded() {
		return invalid("the admin panel is not loaded")
	}
	if path == "" {
		return invalid("export path is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetUsers); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := f.NewSheet(sheetAds); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	users := a.state.Users()
	rows := make([][]any, 0, len(users)+1)
	rows = append(rows, userHeader)
	for _, u := range users {
		rows = append(rows, []any{u.ID.String(), u.Email, u.Name, u.Surname, u.IsAdmin, u.IsBlocked})
	}
	if err := writeRows(f, sheetUsers, rows); err != nil {
		return err
	}

	ads := a.state.Ads()
	rows = make([][]any, 0, len(ads)+1)
	rows = append(rows, adHeader)
	for _, ad := range ads {
		rows = append(rows, []any{
			ad.ID.String(), ad.Title, ad.Description, ad.UserEmail,
			string(ad.Status.Normalize()), imageURLs(ad.Images),
		})
	}
	if err := writeRows(f, sheetAds, rows); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}

	a.log.Info(ctx, "admin panel exported", "path", path, "users", len(users), "ads", len(ads))
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func imageURLs(images []models.Image) string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return strings.Join(urls, "\n")
}
