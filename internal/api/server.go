// Package api exposes aspect-based sentiment analysis over HTTP. The
// server holds one predictor built at startup; per-text model failures
// are returned as data inside a 200 response, not as transport errors.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/cyberabsa/internal/model"
	"github.com/ppiankov/cyberabsa/internal/predict"
)

// Server wraps a gin engine around a single predictor.
type Server struct {
	engine    *gin.Engine
	predictor predict.Predictor
}

// NewServer creates the HTTP service and registers its routes.
func NewServer(predictor predict.Predictor) *Server {
	engine := gin.Default()

	s := &Server{
		engine:    engine,
		predictor: predictor,
	}

	engine.GET("/health", s.handleHealth)
	engine.POST("/analyze", s.handleAnalyze)
	engine.POST("/batch_analyze", s.handleBatchAnalyze)

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on addr and blocks until it exits.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type batchAnalyzeRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  s.predictor.Name(),
	})
}

// handleAnalyze handles POST /analyze.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	c.JSON(http.StatusOK, predict.Analyze(c.Request.Context(), s.predictor, req.Text))
}

// handleBatchAnalyze handles POST /batch_analyze. Each text is analyzed
// independently; a failing text yields an error entry in results while
// the rest still succeed.
func (s *Server) handleBatchAnalyze(c *gin.Context) {
	var req batchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Texts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No texts provided"})
		return
	}

	results := make([]model.Analysis, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = predict.Analyze(c.Request.Context(), s.predictor, text)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
