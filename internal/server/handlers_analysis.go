package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/agawojdecka/polarify/internal/sentiment"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// analysisScope is the project/date scope common to both persisted
// analysis endpoints, carried in query parameters.
type analysisScope struct {
	ProjectID int64
	DateFrom  time.Time
	DateTo    time.Time
}

func bindAnalysisScope(c echo.Context) (analysisScope, error) {
	projectID, err := strconv.ParseInt(c.QueryParam("project_id"), 10, 64)
	if err != nil {
		return analysisScope{}, apperrors.ValidationError("invalid or missing project_id")
	}

	dateFrom, err := time.Parse(dateLayout, c.QueryParam("date_from"))
	if err != nil {
		return analysisScope{}, apperrors.ValidationError("invalid or missing date_from, expected YYYY-MM-DD")
	}

	dateTo, err := time.Parse(dateLayout, c.QueryParam("date_to"))
	if err != nil {
		return analysisScope{}, apperrors.ValidationError("invalid or missing date_to, expected YYYY-MM-DD")
	}

	return analysisScope{ProjectID: projectID, DateFrom: dateFrom, DateTo: dateTo}, nil
}

// requireProjectOwnership verifies the project exists and belongs to the
// user. Ownership checks live here, not in the result store.
func (s *Server) requireProjectOwnership(c echo.Context, projectID, userID int64) error {
	_, err := s.projects.GetByID(c.Request().Context(), projectID, userID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return apperrors.NotFoundError("Project not found").WithField("project_id", projectID)
	}
	if err != nil {
		return apperrors.InternalError("failed to load project", err)
	}
	return nil
}

func (s *Server) handleSentimentAnalysisRaw(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	scope, err := bindAnalysisScope(c)
	if err != nil {
		return err
	}

	opinions, err := bindOpinions(c)
	if err != nil {
		return err
	}

	return s.runAnalysis(c, user, scope, opinions)
}

func (s *Server) handleSentimentAnalysisCSV(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	scope, err := bindAnalysisScope(c)
	if err != nil {
		return err
	}

	opinions, err := opinionsFromUpload(c)
	if err != nil {
		return err
	}

	return s.runAnalysis(c, user, scope, opinions)
}

func (s *Server) runAnalysis(c echo.Context, user *domain.User, scope analysisScope, opinions []domain.Opinion) error {
	if err := s.requireProjectOwnership(c, scope.ProjectID, user.ID); err != nil {
		return err
	}

	result, err := s.analyzer.Analyze(c.Request().Context(), sentiment.AnalyzeParams{
		ProjectID: scope.ProjectID,
		UserID:    user.ID,
		DateFrom:  scope.DateFrom,
		DateTo:    scope.DateTo,
		Opinions:  opinions,
	})
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(200, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSentimentAnalysisResults(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		return apperrors.ValidationError("invalid project_id")
	}

	if err := s.requireProjectOwnership(c, projectID, user.ID); err != nil {
		return err
	}

	dateFrom, err := optionalDate(c.QueryParam("date_from"))
	if err != nil {
		return apperrors.ValidationError("invalid date_from, expected YYYY-MM-DD")
	}
	dateTo, err := optionalDate(c.QueryParam("date_to"))
	if err != nil {
		return apperrors.ValidationError("invalid date_to, expected YYYY-MM-DD")
	}

	results, err := s.analyzer.History(c.Request().Context(), projectID, user.ID, dateFrom, dateTo)
	if err != nil {
		return apperrors.InternalError("failed to load analysis results", err)
	}

	if err := c.JSON(200, results); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
