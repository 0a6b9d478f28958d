package server

import (
	"errors"
	"fmt"

	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/labstack/echo/v4"
)

// bindOpinions reads the JSON opinion batch from the request body.
func bindOpinions(c echo.Context) ([]domain.Opinion, error) {
	var opinions []domain.Opinion
	if err := c.Bind(&opinions); err != nil {
		return nil, apperrors.ValidationError("invalid request body, expected a list of opinions")
	}
	return opinions, nil
}

// mapAnalysisError translates sentiment pipeline errors into structured API
// errors. Oracle failures map to 400 because the oracle is fed the caller's
// own text.
func mapAnalysisError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoOpinions):
		return apperrors.ValidationError("no opinions to analyze")
	case errors.Is(err, domain.ErrDuplicateOpinion):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrOracle):
		return apperrors.OracleError("sentiment classification failed", err)
	default:
		return apperrors.InternalError("sentiment analysis failed", err)
	}
}

func (s *Server) handleAnalyzeSentiment(c echo.Context) error {
	opinions, err := bindOpinions(c)
	if err != nil {
		return err
	}

	scores, err := s.analyzer.Classify(c.Request().Context(), opinions)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(200, scores); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeAverageSentiment(c echo.Context) error {
	opinions, err := bindOpinions(c)
	if err != nil {
		return err
	}

	avg, err := s.analyzer.AverageSentiment(c.Request().Context(), opinions)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(200, map[string]float64{"avg_sentiment": avg}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeStatisticalMeasures(c echo.Context) error {
	opinions, err := bindOpinions(c)
	if err != nil {
		return err
	}

	stats, err := s.analyzer.Statistics(c.Request().Context(), opinions)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(200, stats); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeSentimentCSV(c echo.Context) error {
	opinions, err := opinionsFromUpload(c)
	if err != nil {
		return err
	}

	scores, err := s.analyzer.Classify(c.Request().Context(), opinions)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(200, scores); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
