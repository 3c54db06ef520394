package professionals

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// phoneCandidateWindow caps how many same-kind rows the phone dedup scans.
const phoneCandidateWindow = 50

// Repository exposes professional persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a professionals repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the professional row.
func (r *Repository) Create(ctx context.Context, row *models.Professional) (*models.Professional, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads one professional.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Professional, error) {
	var row models.Professional
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs loads the given professionals. Missing ids are silently absent.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Professional, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Professional
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByKindEmail returns the professional matching (kind, lower(email)), or
// gorm.ErrRecordNotFound.
func (r *Repository) FindByKindEmail(ctx context.Context, kind enums.ProfessionKind, email string) (*models.Professional, error) {
	var row models.Professional
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindPhoneCandidates returns same-kind rows that have a phone set. The
// caller compares digit sequences client-side; formatted numbers defeat SQL
// matching.
func (r *Repository) FindPhoneCandidates(ctx context.Context, kind enums.ProfessionKind) ([]models.Professional, error) {
	var rows []models.Professional
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Where("phone IS NOT NULL AND phone <> ''").
		Limit(phoneCandidateWindow).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns directory entries matching the filter, display_name ascending.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Professional, error) {
	query := r.db.WithContext(ctx).Model(&models.Professional{})
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(display_name) LIKE ? OR LOWER(COALESCE(company_name, '')) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ? OR COALESCE(phone, '') LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	var rows []models.Professional
	if err := query.Order("display_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the given columns on the professional.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SetVerified flips the admin verification flag.
func (r *Repository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", id).
		UpdateColumn("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
