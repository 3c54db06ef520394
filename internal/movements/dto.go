package movements

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/internal/addresses"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// MovementDTO is the raw transport shape for a movement row. The foreign keys
// stay on the DTO even when enrichment resolves them.
type MovementDTO struct {
	ID             uuid.UUID           `json:"id"`
	HorseID        uuid.UUID           `json:"horse_id"`
	FromAddressID  *uuid.UUID          `json:"from_address_id,omitempty"`
	ToAddressID    uuid.UUID           `json:"to_address_id"`
	ProfessionalID *uuid.UUID          `json:"professional_id,omitempty"`
	InterventionID *uuid.UUID          `json:"intervention_id,omitempty"`
	DepartAt       time.Time           `json:"depart_at"`
	ReturnAt       *time.Time          `json:"return_at,omitempty"`
	Reason         *string             `json:"reason,omitempty"`
	Transport      enums.TransportMode `json:"transport"`
	Manual         bool                `json:"manual"`
	CreatedBy      uuid.UUID           `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
}

// MovementDetail is a movement with its related rows resolved. A nil related
// field means either "no reference" or "referenced row missing"; callers that
// need to tell the two apart check the retained id on the embedded DTO.
type MovementDetail struct {
	MovementDTO
	FromAddress  *addresses.AddressDTO          `json:"from_address,omitempty"`
	ToAddress    *addresses.AddressDTO          `json:"to_address,omitempty"`
	Professional *professionals.ProfessionalDTO `json:"professional,omitempty"`
	Intervention *interventions.InterventionDTO `json:"intervention,omitempty"`
}

// CreateRequest is the payload for recording a movement. The destination is
// either a professional's registered address, an inline address draft, or an
// existing address id; exactly one must be provided.
type CreateRequest struct {
	ProfessionalID *uuid.UUID              `json:"professional_id,omitempty"`
	Address        *addresses.AddressInput `json:"address,omitempty"`
	ToAddressID    *uuid.UUID              `json:"to_address_id,omitempty"`
	InterventionID *uuid.UUID              `json:"intervention_id,omitempty"`
	DepartAt       time.Time               `json:"depart_at" validate:"required"`
	ReturnAt       *time.Time              `json:"return_at,omitempty"`
	Reason         *string                 `json:"reason,omitempty"`
	Transport      *enums.TransportMode    `json:"transport,omitempty"`
}

// ListResult is the enriched movement history for one horse. Partial names
// the enrichment categories whose lookup failed; rows are still returned with
// those relations unresolved.
type ListResult struct {
	Movements []MovementDetail `json:"movements"`
	Partial   []string         `json:"partial,omitempty"`
}

func FromModel(m *models.Movement) *MovementDTO {
	if m == nil {
		return nil
	}
	return &MovementDTO{
		ID:             m.ID,
		HorseID:        m.HorseID,
		FromAddressID:  m.FromAddressID,
		ToAddressID:    m.ToAddressID,
		ProfessionalID: m.ProfessionalID,
		InterventionID: m.InterventionID,
		DepartAt:       m.DepartAt,
		ReturnAt:       m.ReturnAt,
		Reason:         m.Reason,
		Transport:      m.Transport,
		Manual:         m.Manual,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
