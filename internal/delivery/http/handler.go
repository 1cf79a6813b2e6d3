package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glycoguide/backend/internal/domain"
	"github.com/glycoguide/backend/internal/usecase"
)

// Handler holds dependencies for the preview API handlers
type Handler struct {
	tokenizer *usecase.Tokenizer
	matcher   *usecase.MatchingService
	formatter *usecase.InstructionService
	images    domain.ImageSource
	cache     domain.CacheRepository
	cacheTTL  time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	tokenizer *usecase.Tokenizer,
	matcher *usecase.MatchingService,
	formatter *usecase.InstructionService,
	images domain.ImageSource,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
) *Handler {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &Handler{
		tokenizer: tokenizer,
		matcher:   matcher,
		formatter: formatter,
		images:    images,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "glycoguide-curation",
		"version": "1.0.0",
	})
}

// matchPreviewRequest is a dry-run image match for one recipe
type matchPreviewRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Category    string   `json:"category"`
}

// matchPreviewResponse carries the selected image and its score breakdown
type matchPreviewResponse struct {
	Match  *domain.ImageMatch `json:"match"`
	Tokens []string           `json:"tokens"`
}

// PreviewMatch scores a recipe's ingredients against the image index without
// writing anything back
func (h *Handler) PreviewMatch(c *gin.Context) {
	var req matchPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return
	}

	cacheKey := matchCacheKey(req)
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil && cached != nil {
		c.JSON(http.StatusOK, gin.H{"result": cached, "source": "cache"})
		return
	}

	candidates, err := h.images.Candidates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrIndexUnavailable.Error()})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrNoCandidates.Error()})
		return
	}

	tokens := h.tokenizer.Tokenize(strings.Join(req.Ingredients, " "))
	match := h.matcher.FindBestMatch(tokens, req.Category, candidates)

	resp := matchPreviewResponse{Match: match, Tokens: tokens}
	if err := h.cache.Set(c.Request.Context(), cacheKey, resp, h.cacheTTL); err != nil {
		// Cache failures never fail the request
		_ = err
	}

	c.JSON(http.StatusOK, gin.H{"result": resp, "source": "live"})
}

// formatPreviewRequest is a dry-run instruction reformat
type formatPreviewRequest struct {
	Instructions string `json:"instructions" binding:"required"`
	RecipeName   string `json:"recipeName"`
}

// PreviewInstructions rewrites instructions without persisting the result
func (h *Handler) PreviewInstructions(c *gin.Context) {
	var req formatPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return
	}

	formatted := h.formatter.FormatInstructions(req.Instructions, req.RecipeName)
	c.JSON(http.StatusOK, gin.H{
		"formatted": formatted,
		"changed":   formatted != req.Instructions,
		"steps":     strings.Count(formatted, "\n") + 1,
	})
}

// matchCacheKey builds a normalized cache key from the request
func matchCacheKey(req matchPreviewRequest) string {
	joined := strings.ToLower(strings.Join(req.Ingredients, ","))
	return fmt.Sprintf("match:%s:%s", strings.ToLower(req.Category), joined)
}
