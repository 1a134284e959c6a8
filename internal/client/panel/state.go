package panel

import (
	"sync"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// State is the admin panel's in-memory view of users and ads. It is safe
// for concurrent use; readers get copies.
type State struct {
	mu     sync.RWMutex
	users  []models.UserProfile
	ads    []models.Ad
	loaded bool
}

// Replace installs freshly loaded collections.
func (s *State) Replace(users []models.UserProfile, ads []models.Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.UserProfile(nil), users...)
	s.ads = FilterAds(ads, "")
	s.loaded = true
}

// Loaded reports whether Replace has been called.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *State) Users() []models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.UserProfile(nil), s.users...)
}

func (s *State) Ads() []models.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterAds(s.ads, "")
}

// FindUser looks a user up by id.
func (s *State) FindUser(id models.ID) (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.UserProfile{}, false
}

// FindAd looks an ad up by id.
func (s *State) FindAd(id models.ID) (models.Ad, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.ads {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return models.Ad{}, false
}

// UpdateUsers applies fn to the user list under the write lock.
func (s *State) UpdateUsers(fn func([]models.UserProfile) []models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = fn(s.users)
}

// UpdateAds applies fn to the ad list under the write lock.
func (s *State) UpdateAds(fn func([]models.Ad) []models.Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads = fn(s.ads)
}
