package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/catalog"
	"github.com/westley-wess/portfolio/database"
	"github.com/westley-wess/portfolio/errs"
	"github.com/westley-wess/portfolio/models"
	"github.com/westley-wess/portfolio/services"
)

// repoSyncer lists a GitHub user's repositories as catalog entries
type repoSyncer interface {
	SyncProjects(ctx context.Context, username string) ([]catalog.Project, error)
}

type projectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projectRepo     *database.ProjectRepo
	github          repoSyncer
	defaultUsername string
}

func newProjectHandler(projectRepo *database.ProjectRepo, github repoSyncer, defaultUsername string) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projectRepo:     projectRepo,
		github:          github,
		defaultUsername: defaultUsername,
	}
}

// projectRequest is the writable part of a project
type projectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TechStack   string  `json:"tech_stack"`
	GithubURL   *string `json:"github_url"`
	DemoURL     *string `json:"demo_url"`
	Source      string  `json:"source"`
}

func (p projectRequest) toModel() models.Project {
	return models.Project{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		TechStack:   strings.TrimSpace(p.TechStack),
		GithubURL:   trimmedOrNil(p.GithubURL),
		DemoURL:     trimmedOrNil(p.DemoURL),
		Source:      p.Source,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// SyncGitHubRequest is the body of the GitHub sync endpoint
type SyncGitHubRequest struct {
	Username string `json:"username"`
}

// SyncGitHubResponse lists the repositories as projects
type SyncGitHubResponse struct {
	Projects []catalog.Project `json:"projects"`
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all curated projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects/ [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID}/ [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a curated project. Requires an admin bearer token.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Conflict - Title already used"
// @Router /projects/ [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := h.responder.decodeJSON(w, r, &req, "project", false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateProject(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.toModel()
		existing, err := h.projectRepo.FindByTitle(project.Title)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("project"))
			return
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.logger.Info().
			Str("projectID", project.ID.String()).
			Str("admin", ctxGetAdminSubject(r.Context())).
			Msg("Project created")
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces the writable fields of a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID}/ [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var req projectRequest
		if err := h.responder.decodeJSON(w, r, &req, "project", false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateProject(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated := req.toModel()
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		if updated.Source == "" {
			updated.Source = existing.Source
		}

		if err := h.projectRepo.Update(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID}/ [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// syncGitHub lists the public repositories of a GitHub user as projects
// @Summary Sync GitHub repositories
// @Description Lists a user's public, non-fork repositories. The username falls back to GITHUB_DEFAULT_USERNAME.
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body SyncGitHubRequest false "GitHub username"
// @Success 200 {object} SyncGitHubResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Missing username"
// @Failure 404 {object} ErrorResponse "Not Found - Unknown GitHub user"
// @Failure 429 {object} ErrorResponse "Too Many Requests - GitHub rate limit"
// @Failure 502 {object} ErrorResponse "Bad Gateway - GitHub failed"
// @Router /projects/sync-github/ [post]
func (h projectHandler) syncGitHub() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SyncGitHubRequest
		if err := h.responder.decodeJSON(w, r, &req, "sync request", true); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			username = h.defaultUsername
		}
		if username == "" {
			h.logger.Error().Msg("GitHub sync requested without a username")
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}

		projects, err := h.github.SyncProjects(r.Context(), username)
		if err != nil {
			var ghErr *services.GitHubError
			if errors.As(err, &ghErr) {
				h.responder.WriteError(w, errs.NewUpstreamError("GitHub", ghErr.StatusCode, err))
				return
			}
			h.responder.WriteError(w, errs.NewUpstreamError("GitHub", 0, err))
			return
		}

		if projects == nil {
			projects = []catalog.Project{}
		}

		h.logger.Debug().Str("username", username).Int("projects", len(projects)).Msg("GitHub repositories synced")
		h.responder.WriteJSON(w, SyncGitHubResponse{Projects: projects})
	}
}
