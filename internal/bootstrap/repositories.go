package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FerretBot_Go/internal/database/postgres"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Loots     repository.Loots
	Viewer    repository.Viewer
	PrizePool repository.PrizePool
}

// InitializeRepositories creates the postgres repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Loots:     postgres.NewLootsRepository(dbPool),
		Viewer:    postgres.NewViewerRepository(dbPool),
		PrizePool: postgres.NewPrizePoolRepository(dbPool),
	}
}
