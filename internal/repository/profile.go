package repository

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/util"
)

// FileProfileRepo persists profiles in a single JSON file keyed by
// user_id. Writes replace the whole file atomically.
type FileProfileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileProfileRepo creates a repo backed by the given JSON file. The
// file is created lazily on first save.
func NewFileProfileRepo(path string) *FileProfileRepo {
	return &FileProfileRepo{path: path}
}

func (r *FileProfileRepo) loadAll() (map[string]*models.UserProfile, error) {
	all := make(map[string]*models.UserProfile)
	if err := util.ReadJSONFile(r.path, &all); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return all, nil
		}
		logger.Get().Warn("failed to load profiles, starting empty",
			zap.String("path", r.path), zap.Error(err))
		return make(map[string]*models.UserProfile), nil
	}
	return all, nil
}

// GetProfile loads a profile by user_id. Returns NotFoundError when the
// user has no stored profile.
func (r *FileProfileRepo) GetProfile(userID string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	profile, ok := all[userID]
	if !ok {
		return nil, NotFoundError{message: fmt.Sprintf("profile not found for user %q", userID)}
	}
	profile.UserID = userID
	return profile, nil
}

// GetOrCreateProfile loads a profile or returns an empty one. The empty
// profile is not persisted until SaveProfile.
func (r *FileProfileRepo) GetOrCreateProfile(userID string) (*models.UserProfile, error) {
	profile, err := r.GetProfile(userID)
	if err != nil {
		var nf NotFoundError
		if errors.As(err, &nf) {
			return &models.UserProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile persists one profile, overwriting only that user's record.
func (r *FileProfileRepo) SaveProfile(profile *models.UserProfile) error {
	if profile.UserID == "" {
		return errors.New("profile has no user_id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	all[profile.UserID] = profile
	if err := util.WriteJSONFileAtomic(r.path, all); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	logger.Get().Info("profile saved",
		zap.String("user_id", profile.UserID),
		zap.String("dietary_preference", profile.DietaryPreference))
	return nil
}
