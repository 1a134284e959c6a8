// Package panel holds the admin panel's local collections and the pure
// reducers applied to them after a successful admin action.
//
// Reducers never mutate their input; they return a new slice. Elements that
// are not affected are copied unchanged.
package panel

import (
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// SetUserBlocked flips the blocked flag of the user with the given id.
func SetUserBlocked(users []models.UserProfile, id models.ID, blocked bool) []models.UserProfile {
	out := make([]models.UserProfile, len(users))
	for i, u := range users {
		if u.ID == id {
			u.IsBlocked = blocked
		}
		out[i] = u
	}
	return out
}

// SetUserAdmin marks every user with the given email as administrator.
func SetUserAdmin(users []models.UserProfile, email string) []models.UserProfile {
	out := make([]models.UserProfile, len(users))
	for i, u := range users {
		if strings.EqualFold(u.Email, email) {
			u.IsAdmin = true
		}
		out[i] = u
	}
	return out
}

// RemoveUser drops the user with the given id.
func RemoveUser(users []models.UserProfile, id models.ID) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// RemoveAdsByOwner drops every ad whose owner email equals email exactly.
func RemoveAdsByOwner(ads []models.Ad, email string) []models.Ad {
	out := make([]models.Ad, 0, len(ads))
	for _, a := range ads {
		if a.UserEmail != email {
			out = append(out, a.Clone())
		}
	}
	return out
}

// SetAdStatus replaces the status of the ad with the given id.
func SetAdStatus(ads []models.Ad, id models.ID, status models.AdStatus) []models.Ad {
	out := make([]models.Ad, len(ads))
	for i, a := range ads {
		a = a.Clone()
		if a.ID == id {
			a.Status = status
		}
		out[i] = a
	}
	return out
}

func RemoveAd(ads []models.Ad, id models.ID) []models.Ad {
	out := make([]models.Ad, 0, len(ads))
	for _, a := range ads {
		if a.ID != id {
			out = append(out, a.Clone())
		}
	}
	return out
}

// RemoveAdImage drops one image from one ad.
func RemoveAdImage(ads []models.Ad, adID, imageID models.ID) []models.Ad {
	out := make([]models.Ad, len(ads))
	for i, a := range ads {
		if a.ID != adID {
			out[i] = a.Clone()
			continue
		}
		images := make([]models.Image, 0, len(a.Images))
		for _, img := range a.Images {
			if img.ID != imageID {
				images = append(images, img)
			}
		}
		a.Images = images
		out[i] = a
	}
	return out
}

// FilterUsers returns the users whose full name or email contains query,
// case-insensitively. An empty query returns every user.
func FilterUsers(users []models.UserProfile, query string) []models.UserProfile {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		if q == "" || contains(q, u.FullName(), u.Email) {
			out = append(out, u)
		}
	}
	return out
}

// FilterAds matches query against title, description and owner email.
func FilterAds(ads []models.Ad, query string) []models.Ad {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Ad, 0, len(ads))
	for _, a := range ads {
		if q == "" || contains(q, a.Title, a.Description, a.UserEmail) {
			out = append(out, a.Clone())
		}
	}
	return out
}

func contains(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
