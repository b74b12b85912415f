package persistence

import (
	"context"

	apptrade "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Stock decrement, sale insert and credit due insert commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls it back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// DueRepo returns the due repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DueRepo() finance.DueRepository {
	return NewGormDueRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
