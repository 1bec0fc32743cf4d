package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/service"
)

// ProfileHandler is the handler for profile requests.
type ProfileHandler struct {
	Service *service.ProfileService
}

// NewProfileHandler is the constructor function for initializing a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: profileService}
}

// GetProfile handles GET /v1/profile/:user_id. Unknown users get an
// empty default rather than a 404.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := h.Service.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles POST /v1/profile. Merge-only: absent fields are
// never reset.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		UserID            string   `json:"user_id" binding:"required"`
		DietaryPreference string   `json:"dietary_preference"`
		Allergens         []string `json:"allergens"`
		Lifestyle         []string `json:"lifestyle"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id field is required"})
		return
	}

	profile, err := h.Service.UpdateProfile(req.UserID, models.ProfileUpdate{
		DietaryPreference: req.DietaryPreference,
		Allergens:         req.Allergens,
		Lifestyle:         req.Lifestyle,
	})
	if err != nil {
		logger.Get().Error("profile update failed", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "profile": profile})
}
