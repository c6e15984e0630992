package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

// EmbeddingController exposes vector search and population. Both handlers
// answer 503 when no vector store is configured.
type EmbeddingController struct {
	retriever *services.VectorRetriever
	populator *services.EmbeddingPopulator
	facts     *services.FactStore
	threshold float64
	limit     int
}

func NewEmbeddingController(retriever *services.VectorRetriever, populator *services.EmbeddingPopulator, facts *services.FactStore, threshold float64, limit int) *EmbeddingController {
	return &EmbeddingController{
		retriever: retriever,
		populator: populator,
		facts:     facts,
		threshold: threshold,
		limit:     limit,
	}
}

func (ec *EmbeddingController) Search(c *gin.Context) {
	if ec.retriever == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrVectorStoreDisabled.Error()})
		return
	}

	var req models.EmbeddingSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid search request",
			"details": err.Error(),
		})
		return
	}

	threshold, limit := ec.threshold, ec.limit
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if req.Limit != nil && *req.Limit > 0 {
		limit = *req.Limit
	}
	intent, _ := models.ParseIntent(req.Intent)

	matches, err := ec.retriever.Search(c.Request.Context(), req.Query, intent, threshold, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Vector search failed",
			"details": err.Error(),
		})
		return
	}
	if matches == nil {
		matches = []models.VectorMatch{}
	}
	c.JSON(http.StatusOK, models.EmbeddingSearchResponse{Matches: matches})
}

// Populate starts a background population run and answers 202. The run
// outlives the request; its outcome is read back with PopulateStatus.
func (ec *EmbeddingController) Populate(c *gin.Context) {
	if ec.populator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrVectorStoreDisabled.Error()})
		return
	}

	if err := ec.populator.Start(c.Request.Context(), ec.facts.Documents()); err != nil {
		if errors.Is(err, services.ErrPopulationRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": ec.populator.Status()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to start embedding population",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusAccepted, ec.populator.Status())
}

func (ec *EmbeddingController) PopulateStatus(c *gin.Context) {
	if ec.populator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrVectorStoreDisabled.Error()})
		return
	}
	c.JSON(http.StatusOK, ec.populator.Status())
}
