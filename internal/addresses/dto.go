package addresses

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
)

// AddressDTO is the transport shape for address rows.
type AddressDTO struct {
	ID         uuid.UUID `json:"id"`
	Label      *string   `json:"label,omitempty"`
	Line1      string    `json:"line1"`
	Line2      *string   `json:"line2,omitempty"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Lat        *float64  `json:"lat,omitempty"`
	Lng        *float64  `json:"lng,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddressInput is the draft shape accepted on movement and professional writes.
type AddressInput struct {
	Label      *string  `json:"label,omitempty"`
	Line1      string   `json:"line1" validate:"required"`
	Line2      *string  `json:"line2,omitempty"`
	PostalCode string   `json:"postal_code" validate:"required"`
	City       string   `json:"city" validate:"required"`
	Country    string   `json:"country,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

func FromModel(a *models.Address) *AddressDTO {
	if a == nil {
		return nil
	}
	return &AddressDTO{
		ID:         a.ID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		PostalCode: a.PostalCode,
		City:       a.City,
		Country:    a.Country,
		Lat:        a.Lat,
		Lng:        a.Lng,
		CreatedAt:  a.CreatedAt,
	}
}
