package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Account routes
	s.echo.POST("/register", s.handleRegister)
	s.echo.POST("/login", s.handleLogin)

	// Stateless analyzer routes (classification without persistence)
	s.echo.POST("/analyze-sentiment", s.handleAnalyzeSentiment)
	s.echo.POST("/analyze-average-sentiment", s.handleAnalyzeAverageSentiment)
	s.echo.POST("/analyze-sentiment-csv", s.handleAnalyzeSentimentCSV)
	s.echo.POST("/analyze-sentiment-statistical-measures", s.handleAnalyzeStatisticalMeasures)

	// Persisted analysis routes (authenticated)
	s.echo.POST("/sentiment-analysis-raw", s.handleSentimentAnalysisRaw, s.requireAuth)
	s.echo.POST("/sentiment-analysis-csv", s.handleSentimentAnalysisCSV, s.requireAuth)
	s.echo.GET("/sentiment-analysis-results/:project_id", s.handleSentimentAnalysisResults, s.requireAuth)

	// Project routes (authenticated)
	s.echo.POST("/projects", s.handleCreateProject, s.requireAuth)
	s.echo.GET("/projects", s.handleListProjects, s.requireAuth)
	s.echo.GET("/projects/:project_id", s.handleGetProject, s.requireAuth)
	s.echo.PUT("/projects/:project_id", s.handleUpdateProject, s.requireAuth)
	s.echo.DELETE("/projects/:project_id", s.handleDeleteProject, s.requireAuth)
}
