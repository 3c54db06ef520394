package horses

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// HorseDTO is the transport shape for horse rows.
type HorseDTO struct {
	ID         uuid.UUID      `json:"id"`
	OwnerID    uuid.UUID      `json:"owner_id"`
	Name       string         `json:"name"`
	Birthdate  *time.Time     `json:"birthdate,omitempty"`
	Sex        enums.HorseSex `json:"sex"`
	SireNumber *string        `json:"sire_number,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// HorseDetail augments the row with derived data: a short-lived signed photo
// URL and the current detention address (latest movement destination).
type HorseDetail struct {
	HorseDTO
	PhotoURL                  *string    `json:"photo_url,omitempty"`
	CurrentDetentionAddressID *uuid.UUID `json:"current_detention_address_id,omitempty"`
}

// CreateRequest is the payload for registering a horse.
type CreateRequest struct {
	Name       string          `json:"name" validate:"required"`
	Birthdate  *time.Time      `json:"birthdate,omitempty"`
	Sex        *enums.HorseSex `json:"sex,omitempty"`
	SireNumber *string         `json:"sire_number,omitempty"`
}

// UpdateRequest carries partial updates; nil means "leave unchanged". The
// clear flags null the column for the fields where blanking removes the
// value. Sex has no clear flag since "unknown" is its empty state.
type UpdateRequest struct {
	Name            *string         `json:"name,omitempty"`
	Birthdate       *time.Time      `json:"birthdate,omitempty"`
	Sex             *enums.HorseSex `json:"sex,omitempty"`
	SireNumber      *string         `json:"sire_number,omitempty"`
	ClearBirthdate  bool            `json:"clear_birthdate,omitempty"`
	ClearSireNumber bool            `json:"clear_sire_number,omitempty"`
}

// ListResult is a cursor page of the caller's horses.
type ListResult struct {
	Horses     []HorseDTO `json:"horses"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// PhotoResult is returned after a successful photo upload.
type PhotoResult struct {
	PhotoPath string `json:"photo_path"`
	PhotoURL  string `json:"photo_url"`
}

func FromModel(h *models.Horse) *HorseDTO {
	if h == nil {
		return nil
	}
	return &HorseDTO{
		ID:         h.ID,
		OwnerID:    h.OwnerID,
		Name:       h.Name,
		Birthdate:  h.Birthdate,
		Sex:        h.Sex,
		SireNumber: h.SireNumber,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

func enumsOrDefault(sex *enums.HorseSex) enums.HorseSex {
	if sex == nil {
		return enums.HorseSexUnknown
	}
	return *sex
}
