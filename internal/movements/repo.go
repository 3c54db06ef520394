package movements

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
)

// Repository exposes movement persistence operations. Movement rows are
// append-only; there are no update or delete paths.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a movements repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the movement row.
func (r *Repository) Create(ctx context.Context, row *models.Movement) (*models.Movement, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ListByHorse returns the horse's movements ordered by departure time
// descending, tie-broken by creation time.
func (r *Repository) ListByHorse(ctx context.Context, horseID uuid.UUID) ([]models.Movement, error) {
	var rows []models.Movement
	err := r.db.WithContext(ctx).
		Where("horse_id = ?", horseID).
		Order("depart_at DESC").Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestToAddressID resolves the horse's current detention address: the
// destination of its most recent movement. Returns nil when the horse has no
// recorded movement.
func (r *Repository) LatestToAddressID(ctx context.Context, horseID uuid.UUID) (*uuid.UUID, error) {
	var row models.Movement
	err := r.db.WithContext(ctx).
		Where("horse_id = ?", horseID).
		Order("depart_at DESC").Order("created_at DESC").Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	id := row.ToAddressID
	return &id, nil
}
