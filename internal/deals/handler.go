package deals

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dealhawk/backend/internal/negotiation"
	"dealhawk/backend/internal/tax"
)

// Handler handles HTTP requests for deal analysis operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new deals handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers deal analysis routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	deals := router.Group("/deals")
	{
		deals.POST("/score", h.scoreDeal)
		deals.GET("/history", h.listHistory)
		deals.GET("/history/export", h.exportHistory)
	}

	router.POST("/pricing/estimate", h.estimatePricing)
	router.POST("/negotiation/brief", h.generateBrief)
	router.POST("/tax/section179", h.calculateSection179)
}

// scoreDeal handles POST /api/v1/deals/score
func (h *Handler) scoreDeal(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.ScoreDeal(c.Request.Context(), &req)

	c.JSON(http.StatusOK, result)
}

// estimatePricing handles POST /api/v1/pricing/estimate
func (h *Handler) estimatePricing(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Estimate(c.Request.Context(), &req))
}

// generateBrief handles POST /api/v1/negotiation/brief
func (h *Handler) generateBrief(c *gin.Context) {
	var req BriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, brief := h.service.Brief(c.Request.Context(), &req)

	if c.Query("format") == "pdf" {
		data, err := negotiation.NewPDFGenerator().Generate(in, brief)
		if err != nil {
			h.logger.Error("Failed to render brief PDF", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		filename := fmt.Sprintf("negotiation-brief-%d-%s-%s.pdf", in.Year, in.Make, in.Model)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)
		return
	}

	c.JSON(http.StatusOK, brief)
}

// calculateSection179 handles POST /api/v1/tax/section179
func (h *Handler) calculateSection179(c *gin.Context) {
	var req tax.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tax.Calculate(req))
}

// listHistory handles GET /api/v1/deals/history
func (h *Handler) listHistory(c *gin.Context) {
	filters := h.historyFilters(c)

	records, total, err := h.service.History(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list score history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":     records,
		"total_count": total,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// exportHistory handles GET /api/v1/deals/history/export
func (h *Handler) exportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "excel" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid export format"})
		return
	}

	filters := h.historyFilters(c)
	filters.Page = 1
	filters.PageSize = 10000

	records, _, err := h.service.History(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to export score history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	timestamp := time.Now().UTC().Format("20060102-150405")

	switch format {
	case "excel":
		data, err := exportHistoryExcel(records)
		if err != nil {
			h.logger.Error("Failed to build Excel export", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "score-history-"+timestamp+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := exportHistoryCSV(records)
		if err != nil {
			h.logger.Error("Failed to build CSV export", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "score-history-"+timestamp+".csv"))
		c.Data(http.StatusOK, "text/csv", data)
	}
}

// historyFilters parses history query parameters with defaults
func (h *Handler) historyFilters(c *gin.Context) *HistoryFilters {
	filters := &HistoryFilters{
		Page:     h.getIntParam(c, "page", 1),
		PageSize: h.getIntParam(c, "page_size", 20),
	}

	if make := c.Query("make"); make != "" {
		filters.Make = &make
	}
	if minScore := c.Query("min_score"); minScore != "" {
		if n, err := strconv.Atoi(minScore); err == nil {
			filters.MinScore = &n
		}
	}

	return filters
}

// getIntParam gets an integer query parameter with a default value
func (h *Handler) getIntParam(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
