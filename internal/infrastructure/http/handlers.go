package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

type handlers struct {
	searchService   inbound.SearchService
	recommendations inbound.RecommendationService
	logger          *zap.Logger
}

func newHandlers(search inbound.SearchService, recommendations inbound.RecommendationService, logger *zap.Logger) *handlers {
	return &handlers{
		searchService:   search,
		recommendations: recommendations,
		logger:          logger.Named("handlers"),
	}
}

type searchRequest struct {
	Query  string `json:"query" binding:"required"`
	UserID string `json:"userId"`
	Limit  int    `json:"limit"`
}

// search handles POST /api/v1/food/search.
func (h *handlers) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	q := inbound.SearchQuery{Text: req.Query, Limit: req.Limit}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		q.UserID = &id
	}

	result, err := h.searchService.Search(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// personalized handles GET /api/v1/recommendations.
func (h *handlers) personalized(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	opts := inbound.RecommendationOptions{
		Limit:          queryInt(c, "limit"),
		IncludeProfile: c.Query("includeProfile") == "true",
	}
	resp, err := h.recommendations.Personalized(c.Request.Context(), userID, opts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) frequent(c *gin.Context) {
	h.strategy(c, h.recommendations.Frequent)
}

func (h *handlers) similar(c *gin.Context) {
	h.strategy(c, h.recommendations.Similar)
}

func (h *handlers) exploration(c *gin.Context) {
	h.strategy(c, h.recommendations.Exploration)
}

func (h *handlers) healthier(c *gin.Context) {
	h.strategy(c, h.recommendations.HealthierAlternatives)
}

// timeBased handles GET /api/v1/recommendations/time-based with an
// optional mealType override.
func (h *handlers) timeBased(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	recs, err := h.recommendations.TimeBased(c.Request.Context(), userID, c.Query("mealType"), queryInt(c, "limit"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

func (h *handlers) strategy(c *gin.Context, run func(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.Recommendation, error)) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	recs, err := run(c.Request.Context(), userID, queryInt(c, "limit"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

func (h *handlers) userID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *handlers) respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		h.logger.Warn("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	h.logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
