package horses

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/pagination"
)

// Repository exposes horse persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a horses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the horse row.
func (r *Repository) Create(ctx context.Context, row *models.Horse) (*models.Horse, error) {
	row.Name = strings.TrimSpace(row.Name)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads one horse.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Horse, error) {
	var row models.Horse
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByOwner returns a cursor page of the owner's horses, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params pagination.Params) ([]models.Horse, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Horse
	err = qb.Order("created_at DESC").Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// Update persists the given columns, scoped to the owner so a stale check
// cannot widen access.
func (r *Repository) Update(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Horse{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete removes the horse, scoped to the owner.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Horse{})
	return result.RowsAffected, result.Error
}

// UpdatePhotoPath stores the storage object key for the horse's photo.
func (r *Repository) UpdatePhotoPath(ctx context.Context, ownerID, id uuid.UUID, path string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Horse{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		UpdateColumn("photo_path", path)
	return result.RowsAffected, result.Error
}
