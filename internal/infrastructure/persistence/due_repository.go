package persistence

import (
	"context"

	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDueRepository implements DueRepository using GORM
type GormDueRepository struct {
	db *gorm.DB
}

// NewGormDueRepository creates a new GormDueRepository
func NewGormDueRepository(db *gorm.DB) *GormDueRepository {
	return &GormDueRepository{db: db}
}

// FindByID finds a due by its ID
func (r *GormDueRepository) FindByID(ctx context.Context, id uint64) (*finance.Due, error) {
	var model models.DueModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns unsettled dues first, newest first within each group
func (r *GormDueRepository) FindAll(ctx context.Context) ([]finance.Due, error) {
	var ms []models.DueModel
	if err := r.db.WithContext(ctx).
		Order("is_settled ASC, created_at DESC, id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.DuesToDomain(ms), nil
}

// FindRecent returns up to limit dues, newest first. A limit of 0 returns all.
func (r *GormDueRepository) FindRecent(ctx context.Context, limit int) ([]finance.Due, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []models.DueModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.DuesToDomain(ms), nil
}

// Save creates or updates a due
func (r *GormDueRepository) Save(ctx context.Context, due *finance.Due) error {
	model := models.DueModelFromDomain(due)

	var err error
	if due.IsNew() {
		err = r.db.WithContext(ctx).Create(model).Error
	} else {
		err = r.db.WithContext(ctx).Save(model).Error
	}
	if err != nil {
		return err
	}
	due.ID = model.ID
	return nil
}

// Ensure GormDueRepository implements DueRepository
var _ finance.DueRepository = (*GormDueRepository)(nil)
