package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/seas-api/internal/adapter/store/text"
	"go.ngs.io/seas-api/internal/domain"
	"go.ngs.io/seas-api/internal/usecase"
)

// Handler handles HTTP requests for the sea dataset.
type Handler struct {
	analysisUC *usecase.SeaAnalysisUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(analysisUC *usecase.SeaAnalysisUseCase) *Handler {
	return &Handler{
		analysisUC: analysisUC,
	}
}

// ListSeas handles GET /v1/seas.
func (h *Handler) ListSeas(c *gin.Context) {
	seas := h.analysisUC.Seas()
	c.JSON(http.StatusOK, gin.H{
		"seas":  seas,
		"count": len(seas),
		"max":   domain.MaxSeas,
	})
}

// CreateSea handles POST /v1/seas.
func (h *Handler) CreateSea(c *gin.Context) {
	var sea domain.Sea
	if err := c.ShouldBindJSON(&sea); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid sea: %v", err)})
		return
	}

	result, err := h.analysisUC.Add(sea)
	if errors.Is(err, usecase.ErrStoreFull) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// MaxDatasetBytes caps the size of an uploaded dataset body.
const MaxDatasetBytes = 1 << 20

// ReplaceDataset handles PUT /v1/seas/dataset.
// The body uses the same ';'-delimited format as dataset files.
func (h *Handler) ReplaceDataset(c *gin.Context) {
	// Read the body before taking the store lock.
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxDatasetBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("dataset exceeds %d bytes", MaxDatasetBytes)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read dataset: %v", err)})
		return
	}

	response := h.analysisUC.Replace("request", func(s *domain.SeaStore) int {
		return text.ReadSeas(bytes.NewReader(body), s)
	})

	c.JSON(http.StatusOK, response)
}

// GetDeepest handles GET /v1/seas/deepest.
func (h *Handler) GetDeepest(c *gin.Context) {
	result, err := h.analysisUC.Deepest()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLeastSalty handles GET /v1/seas/least-salty.
func (h *Handler) GetLeastSalty(c *gin.Context) {
	result, err := h.analysisUC.LeastSalty()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAverageDepth handles GET /v1/seas/average-depth.
func (h *Handler) GetAverageDepth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"average_depth_m": h.analysisUC.AverageDepth(),
	})
}

// SortByDepth handles POST /v1/seas/sort.
func (h *Handler) SortByDepth(c *gin.Context) {
	seas := h.analysisUC.SortByDepth()
	c.JSON(http.StatusOK, gin.H{
		"seas":  seas,
		"count": len(seas),
	})
}

// GetBySalinity handles GET /v1/seas/by-salinity.
func (h *Handler) GetBySalinity(c *gin.Context) {
	targetStr := c.Query("target")
	toleranceStr := c.Query("tolerance")

	if targetStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target parameter is required"})
		return
	}

	target, err := strconv.ParseFloat(targetStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid target: %v", err)})
		return
	}

	// Parse tolerance (default: 0.1).
	tolerance := domain.DefaultSalinityTolerance
	if toleranceStr != "" {
		tolerance, err = strconv.ParseFloat(toleranceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid tolerance: %v", err)})
			return
		}
	}

	c.JSON(http.StatusOK, h.analysisUC.BySalinity(target, tolerance))
}

// GetSummary handles GET /v1/seas/summary.
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.analysisUC.Summary())
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
