package models

import "strings"

// AdStatus is the moderation state of an ad.
type AdStatus string

const (
	AdStatusActive  AdStatus = "active"
	AdStatusReview  AdStatus = "review"
	AdStatusBlocked AdStatus = "blocked"
)

// Normalize maps an empty status to active, matching how the backend treats
// ads created before moderation existed.
func (s AdStatus) Normalize() AdStatus {
	if s == "" {
		return AdStatusActive
	}
	return AdStatus(strings.ToLower(string(s)))
}

// Image belongs to exactly one Ad.
type Image struct {
	ID  ID     `json:"id"`
	URL string `json:"url"`
}

// Ad is a classified listing. Images keep the order the backend returns.
type Ad struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	UserEmail   string   `json:"user_email,omitempty"`
	Status      AdStatus `json:"status,omitempty"`
	Images      []Image  `json:"images"`
}

// Clone returns a copy of the ad that does not share its Images slice.
func (a Ad) Clone() Ad {
	if a.Images != nil {
		a.Images = append([]Image(nil), a.Images...)
	}
	return a
}

// CreatedAd is the backend response to an ad creation.
type CreatedAd struct {
	ID        ID       `json:"ad_id"`
	Message   string   `json:"msg"`
	Notice    string   `json:"notice"`
	ImageURLs []string `json:"image_urls"`
	Status    AdStatus `json:"status"`
}
