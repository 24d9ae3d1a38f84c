package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bench-go/internal/bench"
	"bench-go/internal/service/runstore"
)

// BenchController handles benchmark HTTP endpoints
type BenchController struct {
	registry *bench.Registry
	runner   *bench.Runner
	store    runstore.RunStore // may be nil
	logger   *zap.Logger
}

// NewBenchController creates a new benchmark controller
func NewBenchController(registry *bench.Registry, runner *bench.Runner, store runstore.RunStore, logger *zap.Logger) *BenchController {
	return &BenchController{
		registry: registry,
		runner:   runner,
		store:    store,
		logger:   logger,
	}
}

// CompareRequest is the request body for a two-codebase comparison
type CompareRequest struct {
	Codebase1 string             `json:"codebase1" binding:"required"`
	Codebase2 string             `json:"codebase2" binding:"required"`
	Weights   map[string]float64 `json:"weights"`
	Skip      []string           `json:"skip"`
}

// Compare handles POST /api/v1/compare
func (bc *BenchController) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bc.logger.Info("Comparing codebases",
		zap.String("codebase1", req.Codebase1),
		zap.String("codebase2", req.Codebase2))

	cmp, err := bc.runner.Compare(c.Request.Context(), req.Codebase1, req.Codebase2, bench.CompareOptions{
		Weights: req.Weights,
		Skip:    req.Skip,
	})
	if err != nil {
		bc.logger.Error("Comparison failed",
			zap.String("codebase1", req.Codebase1),
			zap.String("codebase2", req.Codebase2),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Comparison failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, cmp)
}

// AssessRequest is the request body for a single-codebase assessment
type AssessRequest struct {
	Codebase   string   `json:"codebase" binding:"required"`
	Benchmarks []string `json:"benchmarks"` // empty means all
}

// Assess handles POST /api/v1/assess
func (bc *BenchController) Assess(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bc.logger.Info("Assessing codebase",
		zap.String("codebase", req.Codebase),
		zap.Strings("benchmarks", req.Benchmarks))

	results, err := bc.runner.Assess(c.Request.Context(), req.Codebase, req.Benchmarks)
	if err != nil {
		bc.logger.Error("Assessment failed",
			zap.String("codebase", req.Codebase),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Assessment failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"codebase": req.Codebase,
		"results":  results,
	})
}

// ListBenchmarks handles GET /api/v1/benchmarks
func (bc *BenchController) ListBenchmarks(c *gin.Context) {
	benchmarks := make([]map[string]interface{}, 0)
	for _, b := range bc.registry.GetAll() {
		benchmarks = append(benchmarks, map[string]interface{}{
			"name":        b.Name(),
			"category":    b.Category(),
			"description": b.Description(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"benchmarks": benchmarks,
		"count":      len(benchmarks),
	})
}

// RecentRuns handles GET /api/v1/runs?limit=N
func (bc *BenchController) RecentRuns(c *gin.Context) {
	if bc.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	runs, err := bc.store.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		bc.logger.Error("Failed to load run history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to load run history: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}
