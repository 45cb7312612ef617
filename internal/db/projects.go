package db

import (
	"context"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// ProjectCollection provides access to projects and their sites.
type ProjectCollection struct {
	projects *collection[models.Project]
	sites    *collection[models.Site]
}

// NewProjectCollection creates a project collection over the given store.
func NewProjectCollection(store kv.Store) *ProjectCollection {
	return &ProjectCollection{
		projects: &collection[models.Project]{
			store: store,
			key:   keyProjects,
			kind:  "project",
			seed:  fixtures.Projects,
			id:    func(p models.Project) string { return p.ID },
		},
		sites: &collection[models.Site]{
			store: store,
			key:   keySites,
			kind:  "site",
			seed:  fixtures.Sites,
			id:    func(s models.Site) string { return s.ID },
		},
	}
}

// List returns every project.
func (p *ProjectCollection) List(ctx context.Context) ([]models.Project, error) {
	return p.projects.List(ctx)
}

// GetByID returns one project by id, or a NotFoundError.
func (p *ProjectCollection) GetByID(ctx context.Context, id string) (models.Project, error) {
	return p.projects.getByID(ctx, id)
}

// ListSites returns sites, filtered to one project when projectID is
// non-empty.
func (p *ProjectCollection) ListSites(ctx context.Context, projectID string) ([]models.Site, error) {
	if projectID == "" {
		return p.sites.List(ctx)
	}
	return p.sites.filter(ctx, func(s models.Site) bool {
		return s.ProjectID == projectID
	})
}

// GetSite returns one site by id, or a NotFoundError.
func (p *ProjectCollection) GetSite(ctx context.Context, id string) (models.Site, error) {
	return p.sites.getByID(ctx, id)
}
