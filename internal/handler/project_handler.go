package handler

import (
	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

var projectFields = []string{"title", "img", "description", "projectDetail", "gitRepoLinks", "demoLink", "note"}

// ProjectHandler binds the generic factory to the project resource. Projects
// always belong to the authenticated creator and carry a slug derived from
// the title.
type ProjectHandler struct {
	Resource[model.Project]
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects repository.ProjectRepository) *ProjectHandler {
	h := &ProjectHandler{}
	h.Repo = projects
	h.Mutable = projectFields
	h.BeforeCreate = func(c echo.Context, p *model.Project) {
		if user := auth.CurrentUser(c); user != nil {
			p.UserID = user.ID
		}
	}
	h.BeforeSave = func(p *model.Project) {
		p.Slug = slug.Make(p.Title)
	}
	return h
}
