package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/labstack/echo/v4"
)

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func projectIDParam(c echo.Context) (int64, error) {
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid project_id")
	}
	return projectID, nil
}

func (s *Server) handleCreateProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Name == "" {
		return apperrors.ValidationError("project name is required")
	}

	project, err := s.projects.Create(c.Request().Context(), user.ID, req.Name, req.Description)
	if err != nil {
		return apperrors.InternalError("failed to create project", err)
	}

	if err := c.JSON(201, project); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListProjects(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projects, err := s.projects.List(c.Request().Context(), user.ID)
	if err != nil {
		return apperrors.InternalError("failed to list projects", err)
	}

	if err := c.JSON(200, projects); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projectID, err := projectIDParam(c)
	if err != nil {
		return err
	}

	project, err := s.projects.GetByID(c.Request().Context(), projectID, user.ID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return apperrors.NotFoundError("Project not found").WithField("project_id", projectID)
	}
	if err != nil {
		return apperrors.InternalError("failed to load project", err)
	}

	if err := c.JSON(200, project); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projectID, err := projectIDParam(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Name == "" {
		return apperrors.ValidationError("project name is required")
	}

	project, err := s.projects.Update(c.Request().Context(), projectID, user.ID, req.Name, req.Description)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return apperrors.NotFoundError("Project not found").WithField("project_id", projectID)
	}
	if err != nil {
		return apperrors.InternalError("failed to update project", err)
	}

	if err := c.JSON(200, project); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projectID, err := projectIDParam(c)
	if err != nil {
		return err
	}

	err = s.projects.Delete(c.Request().Context(), projectID, user.ID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return apperrors.NotFoundError("Project not found").WithField("project_id", projectID)
	}
	if err != nil {
		return apperrors.InternalError("failed to delete project", err)
	}

	if err := c.JSON(200, map[string]string{"detail": "Project deleted"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
