package trade

import (
	"context"
	"time"
)

// SaleFilter narrows a sale listing. Zero values mean "no constraint".
type SaleFilter struct {
	ProductID *uint64
	From      *time.Time
	To        *time.Time
	Limit     int
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uint64) (*Sale, error)

	// FindAll returns sales matching the filter ordered by creation time ascending
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)

	// FindRecent returns up to limit sales, newest first. A limit of 0 returns all.
	FindRecent(ctx context.Context, limit int) ([]Sale, error)

	// QuantitySeries returns the quantities sold of a product ordered by time
	QuantitySeries(ctx context.Context, productID uint64) ([]float64, error)

	// Save persists a new sale
	Save(ctx context.Context, sale *Sale) error
}
