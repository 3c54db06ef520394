package addresses

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
)

// candidateWindow caps how many rows the dedup check compares against.
const candidateWindow = 5

// Repository exposes address persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an addresses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the address row built from the input.
func (r *Repository) Create(ctx context.Context, createdBy uuid.UUID, input AddressInput) (*models.Address, error) {
	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = defaultCountry
	}
	address := &models.Address{
		Label:      input.Label,
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      input.Line2,
		PostalCode: strings.TrimSpace(input.PostalCode),
		City:       strings.TrimSpace(input.City),
		Country:    country,
		Lat:        input.Lat,
		Lng:        input.Lng,
		CreatedBy:  createdBy,
	}
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// FindByID loads one address row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// FindByIDs loads the given address rows. Missing ids are silently absent
// from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Address, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Address
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCandidates returns up to candidateWindow rows owned by the caller that
// loosely match the draft. The resolver re-checks each candidate for strict
// normalized equality.
func (r *Repository) FindCandidates(ctx context.Context, createdBy uuid.UUID, input AddressInput) ([]models.Address, error) {
	var rows []models.Address
	err := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Where("LOWER(line1) = LOWER(?)", strings.TrimSpace(input.Line1)).
		Where("LOWER(city) = LOWER(?)", strings.TrimSpace(input.City)).
		Where("postal_code = ?", strings.TrimSpace(input.PostalCode)).
		Limit(candidateWindow).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
