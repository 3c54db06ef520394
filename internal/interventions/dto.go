package interventions

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
)

// InterventionDTO is the transport shape for care events.
type InterventionDTO struct {
	ID             uuid.UUID  `json:"id"`
	HorseID        uuid.UUID  `json:"horse_id"`
	Title          string     `json:"title"`
	Notes          *string    `json:"notes,omitempty"`
	ProfessionalID *uuid.UUID `json:"professional_id,omitempty"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateRequest is the payload for recording an intervention.
type CreateRequest struct {
	Title          string     `json:"title" validate:"required"`
	Notes          *string    `json:"notes,omitempty"`
	ProfessionalID *uuid.UUID `json:"professional_id,omitempty"`
}

func FromModel(i *models.Intervention) *InterventionDTO {
	if i == nil {
		return nil
	}
	return &InterventionDTO{
		ID:             i.ID,
		HorseID:        i.HorseID,
		Title:          i.Title,
		Notes:          i.Notes,
		ProfessionalID: i.ProfessionalID,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
	}
}
