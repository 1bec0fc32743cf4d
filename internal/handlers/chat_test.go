package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ingresure/ingresure-api/internal/ai"
	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/service"
	"github.com/ingresure/ingresure-api/internal/testutil"
)

func newChatRouter(t *testing.T, repo *testutil.MockProfileRepo, provider ai.TextProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewChatService(&config.Config{}, repo, testutil.NewTestEngine(t), provider)
	h := NewChatHandler(svc)

	r := gin.New()
	r.POST("/v1/chat/grocery", h.Chat)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandlerVerdict(t *testing.T) {
	repo := testutil.NewMockProfileRepo()
	repo.Profiles["u1"] = &models.UserProfile{UserID: "u1", DietaryPreference: "Vegan"}
	r := newChatRouter(t, repo, nil)

	w := postJSON(t, r, "/v1/chat/grocery", gin.H{"query": "Can I eat milk?", "user_id": "u1"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "**Milk**") {
		t.Errorf("expected verdict to flag milk, got %q", body)
	}
	if strings.Count(body, service.ProfileMarker) != 2 {
		t.Errorf("expected framed profile JSON in response, got %q", body)
	}
}

func TestChatHandlerProfileFraming(t *testing.T) {
	repo := testutil.NewMockProfileRepo()
	r := newChatRouter(t, repo, nil)

	w := postJSON(t, r, "/v1/chat/grocery", gin.H{"query": "I am vegan", "user_id": "u2"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	start := strings.Index(body, service.ProfileMarker)
	if start < 0 {
		t.Fatalf("profile marker missing from %q", body)
	}
	framed := body[start+len(service.ProfileMarker):]
	end := strings.Index(framed, service.ProfileMarker)
	if end < 0 {
		t.Fatalf("closing profile marker missing from %q", body)
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(framed[:end]), &profile); err != nil {
		t.Fatalf("framed profile is not valid JSON: %v", err)
	}
	if !strings.EqualFold(profile.DietaryPreference, "vegan") {
		t.Errorf("expected vegan preference in framed profile, got %q", profile.DietaryPreference)
	}
	if _, ok := repo.Profiles["u2"]; !ok {
		t.Error("expected profile update to be persisted")
	}
}

func TestChatHandlerLLMFallback(t *testing.T) {
	repo := testutil.NewMockProfileRepo()
	provider := &testutil.MockTextProvider{
		ExtractIntentFunc: func(ctx context.Context, query string) (*ai.IntentResult, error) {
			return &ai.IntentResult{
				Intent:      "INGREDIENT_QUERY",
				Ingredients: []string{"gelatin"},
			}, nil
		},
	}
	repo.Profiles["u3"] = &models.UserProfile{UserID: "u3", DietaryPreference: "Vegan"}
	r := newChatRouter(t, repo, provider)

	w := postJSON(t, r, "/v1/chat/grocery", gin.H{"query": "could u tell if that jelly thing suits me", "user_id": "u3"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "**Gelatin**") {
		t.Errorf("expected LLM-extracted gelatin in verdict, got %q", w.Body.String())
	}
}

func TestChatHandlerMissingQuery(t *testing.T) {
	r := newChatRouter(t, testutil.NewMockProfileRepo(), nil)

	w := postJSON(t, r, "/v1/chat/grocery", gin.H{"user_id": "u1"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
