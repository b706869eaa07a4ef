package market

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for market data
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers market data routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	market := router.Group("/market")
	{
		market.GET("/trends", h.getTrends)
		market.GET("/stats", h.getStats)
	}
}

// getTrends handles GET /api/v1/market/trends
func (h *Handler) getTrends(c *gin.Context) {
	make, model, ok := h.vehicleParams(c)
	if !ok {
		return
	}

	trends, err := h.service.Trends(c.Request.Context(), make, model)
	if err != nil {
		h.logger.Error("Failed to get market trends", zap.Error(err),
			zap.String("make", make), zap.String("model", model))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trends)
}

// getStats handles GET /api/v1/market/stats
func (h *Handler) getStats(c *gin.Context) {
	make, model, ok := h.vehicleParams(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), make, model)
	if err != nil {
		h.logger.Error("Failed to get market stats", zap.Error(err),
			zap.String("make", make), zap.String("model", model))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) vehicleParams(c *gin.Context) (string, string, bool) {
	make := c.Query("make")
	model := c.Query("model")
	if make == "" || model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "make and model are required"})
		return "", "", false
	}
	return make, model, true
}
