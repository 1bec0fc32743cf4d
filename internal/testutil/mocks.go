package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ingresure/ingresure-api/internal/ai"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/repository"
)

// --- MockTextProvider ---

// MockTextProvider is a mock implementation of ai.TextProvider.
type MockTextProvider struct {
	ExtractIntentFunc   func(ctx context.Context, query string) (*ai.IntentResult, error)
	RewriteVerdictFunc  func(ctx context.Context, req ai.VerdictPrompt) (string, error)
	ComposeGreetingFunc func(ctx context.Context, dietaryPreference string) (string, error)
	ComposeGeneralFunc  func(ctx context.Context, query, dietaryPreference string) (string, error)
}

func (m *MockTextProvider) ExtractIntent(ctx context.Context, query string) (*ai.IntentResult, error) {
	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, query)
	}
	return nil, fmt.Errorf("ExtractIntent not configured")
}

func (m *MockTextProvider) RewriteVerdict(ctx context.Context, req ai.VerdictPrompt) (string, error) {
	if m.RewriteVerdictFunc != nil {
		return m.RewriteVerdictFunc(ctx, req)
	}
	return "", fmt.Errorf("RewriteVerdict not configured")
}

func (m *MockTextProvider) ComposeGreeting(ctx context.Context, dietaryPreference string) (string, error) {
	if m.ComposeGreetingFunc != nil {
		return m.ComposeGreetingFunc(ctx, dietaryPreference)
	}
	return "", fmt.Errorf("ComposeGreeting not configured")
}

func (m *MockTextProvider) ComposeGeneral(ctx context.Context, query, dietaryPreference string) (string, error) {
	if m.ComposeGeneralFunc != nil {
		return m.ComposeGeneralFunc(ctx, query, dietaryPreference)
	}
	return "", fmt.Errorf("ComposeGeneral not configured")
}

// --- MockProfileRepo ---

// MockProfileRepo is an in-memory implementation of repository.ProfileRepo.
type MockProfileRepo struct {
	mu       sync.Mutex
	Profiles map[string]*models.UserProfile
	SaveErr  error
}

// NewMockProfileRepo returns an empty in-memory profile repo.
func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{Profiles: make(map[string]*models.UserProfile)}
}

var _ repository.ProfileRepo = (*MockProfileRepo)(nil)

func (m *MockProfileRepo) GetProfile(userID string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return nil, repository.NewNotFoundError(fmt.Sprintf("profile not found for user %q", userID))
}

func (m *MockProfileRepo) GetOrCreateProfile(userID string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return &models.UserProfile{UserID: userID}, nil
}

func (m *MockProfileRepo) SaveProfile(profile *models.UserProfile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles[profile.UserID] = profile
	return nil
}
