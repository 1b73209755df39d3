// Package api serves approval predictions from a fitted pipeline over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bankloan/internal/pipeline"
)

const maxBatch = 1000

type Options struct {
	APIKey    string
	Threshold float64
}

type Server struct {
	pipe      *pipeline.Pipeline
	logger    *zap.Logger
	apiKey    string
	threshold float64
}

func NewServer(p *pipeline.Pipeline, opts Options, logger *zap.Logger) *Server {
	if opts.Threshold <= 0 || opts.Threshold >= 1 {
		opts.Threshold = 0.5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{pipe: p, logger: logger, apiKey: opts.APIKey, threshold: opts.Threshold}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger)

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/")
	api.Use(s.apiKeyMiddleware)
	api.GET("/model", s.handleModel)
	api.POST("/predict", s.handlePredict)
	api.POST("/batch", s.handleBatch)
	return r
}

func (s *Server) apiKeyMiddleware(c *gin.Context) {
	if s.apiKey == "" {
		c.Next()
		return
	}
	if c.GetHeader("X-API-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}
