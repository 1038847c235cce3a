package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no rate limiting)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Analysis endpoints
	limited := s.rateLimiter()
	s.echo.POST("/analyze/emotion", s.handleAnalyzeEmotion, limited)
	s.echo.POST("/analyze/emotion-trajectory", s.handleAnalyzeTrajectory, limited)
	s.echo.GET("/analyze/trajectories/:id", s.handleGetTrajectory)
}
