package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/service"
)

// ScanHandler is the handler for label-scan and menu-verification requests.
type ScanHandler struct {
	Service *service.ScanService
}

// NewScanHandler is the constructor function for initializing a new ScanHandler.
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{Service: scanService}
}

// Scan handles POST /v1/scan. OCR runs upstream; the request carries the
// extracted label text.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req struct {
		RawText string `json:"raw_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "raw_text field is required"})
		return
	}

	result, err := h.Service.ScanLabel(c.Request.Context(), req.RawText)
	if err != nil {
		logger.WithRequestID(c.GetString("request_id")).Error("scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// VerifyMenuItem handles POST /v1/verify-menu-item.
func (h *ScanHandler) VerifyMenuItem(c *gin.Context) {
	var req struct {
		ItemName         string   `json:"item_name" binding:"required"`
		Description      string   `json:"description"`
		Ingredients      []string `json:"ingredients" binding:"required"`
		ClaimedDietTypes []string `json:"claimed_diet_types" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_name, ingredients, and claimed_diet_types fields are required"})
		return
	}

	result, err := h.Service.VerifyMenuItem(c.Request.Context(), req.ItemName, req.Ingredients, req.ClaimedDietTypes)
	if err != nil {
		logger.Get().Error("menu item verification failed", zap.String("item", req.ItemName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
