package service

import (
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/repository"
)

// ProfileService is the business logic layer for profile operations.
type ProfileService struct {
	Repo repository.ProfileRepo
}

// NewProfileService is the constructor function for initializing a new ProfileService.
func NewProfileService(repo repository.ProfileRepo) *ProfileService {
	return &ProfileService{Repo: repo}
}

// ValidateUserID validates a caller-supplied user id.
func (s *ProfileService) ValidateUserID(userID string) error {
	if userID == "" {
		return errors.New("user_id is required")
	}
	if len(userID) > 64 {
		return errors.New("user_id must be at most 64 characters")
	}
	if !govalidator.Matches(userID, `^[A-Za-z0-9_.@-]+$`) {
		return fmt.Errorf("user_id contains invalid characters")
	}
	return nil
}

// GetProfile returns the stored profile, or an empty default when the
// user has none yet.
func (s *ProfileService) GetProfile(userID string) (*models.UserProfile, error) {
	if err := s.ValidateUserID(userID); err != nil {
		return nil, err
	}
	profile, err := s.Repo.GetProfile(userID)
	if err != nil {
		var nf repository.NotFoundError
		if errors.As(err, &nf) {
			return &models.UserProfile{
				UserID:            userID,
				DietaryPreference: "No rules",
				Allergens:         []string{},
				Lifestyle:         []string{},
			}, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a merge-only partial update and persists the
// result. Absent fields are never reset.
func (s *ProfileService) UpdateProfile(userID string, update models.ProfileUpdate) (*models.UserProfile, error) {
	if err := s.ValidateUserID(userID); err != nil {
		return nil, err
	}
	profile, err := s.Repo.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.ApplyUpdate(update)
	if err := s.Repo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
