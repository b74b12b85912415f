package trade

import (
	"context"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work against repositories that share one
// database transaction. A returned error rolls the whole unit back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories touched when recording a sale
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	SaleRepo() trade.SaleRepository
	DueRepo() finance.DueRepository
}

// NoOpTransactionScope runs the unit of work on plain repositories
// without a transaction. Used by tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	saleRepo    trade.SaleRepository
	dueRepo     finance.DueRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	saleRepo trade.SaleRepository,
	dueRepo finance.DueRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		dueRepo:     dueRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository { return s.saleRepo }

// DueRepo returns the due repository
func (s *NoOpTransactionScope) DueRepo() finance.DueRepository { return s.dueRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
