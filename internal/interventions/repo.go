package interventions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
)

// Repository exposes intervention persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an interventions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the intervention row.
func (r *Repository) Create(ctx context.Context, row *models.Intervention) (*models.Intervention, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads one intervention.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Intervention, error) {
	var row models.Intervention
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs loads the given interventions. Missing ids are silently absent.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Intervention, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Intervention
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByHorse returns the horse's interventions, newest first.
func (r *Repository) ListByHorse(ctx context.Context, horseID uuid.UUID) ([]models.Intervention, error) {
	var rows []models.Intervention
	err := r.db.WithContext(ctx).
		Where("horse_id = ?", horseID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
