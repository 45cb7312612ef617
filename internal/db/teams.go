package db

import (
	"context"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// TeamCollection provides access to the team collection.
type TeamCollection struct {
	teams *collection[models.Team]
}

// NewTeamCollection creates a team collection over the given store.
func NewTeamCollection(store kv.Store) *TeamCollection {
	return &TeamCollection{
		teams: &collection[models.Team]{
			store: store,
			key:   keyTeams,
			kind:  "team",
			seed:  fixtures.Teams,
			id:    func(t models.Team) string { return t.ID },
		},
	}
}

// List returns every team.
func (t *TeamCollection) List(ctx context.Context) ([]models.Team, error) {
	return t.teams.List(ctx)
}

// GetByID returns one team by id, or a NotFoundError.
func (t *TeamCollection) GetByID(ctx context.Context, id string) (models.Team, error) {
	return t.teams.getByID(ctx, id)
}
