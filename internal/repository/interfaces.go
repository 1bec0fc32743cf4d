package repository

import "github.com/ingresure/ingresure-api/internal/models"

// ProfileRepo is the interface for profile storage operations.
type ProfileRepo interface {
	GetProfile(userID string) (*models.UserProfile, error)
	GetOrCreateProfile(userID string) (*models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}
