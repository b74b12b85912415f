package finance

import "context"

// DueRepository defines the interface for due persistence
type DueRepository interface {
	// FindByID finds a due by its ID
	FindByID(ctx context.Context, id uint64) (*Due, error)

	// FindAll returns dues with unsettled first, then newest first
	FindAll(ctx context.Context) ([]Due, error)

	// FindRecent returns up to limit dues, newest first. A limit of 0 returns all.
	FindRecent(ctx context.Context, limit int) ([]Due, error)

	// Save creates or updates a due
	Save(ctx context.Context, due *Due) error
}
