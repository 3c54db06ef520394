package professionals

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/internal/addresses"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// ProfessionalDTO is the transport shape for directory entries.
type ProfessionalDTO struct {
	ID          uuid.UUID             `json:"id"`
	DisplayName string                `json:"display_name"`
	CompanyName *string               `json:"company_name,omitempty"`
	Kind        enums.ProfessionKind  `json:"kind"`
	Email       *string               `json:"email,omitempty"`
	Phone       *string               `json:"phone,omitempty"`
	Website     *string               `json:"website,omitempty"`
	Notes       *string               `json:"notes,omitempty"`
	Address     *addresses.AddressDTO `json:"address,omitempty"`
	IsVerified  bool                  `json:"is_verified"`
	CreatedBy   uuid.UUID             `json:"created_by"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CreateRequest is the payload for creating a directory entry. Address is an
// optional inline draft resolved through the address dedup path.
type CreateRequest struct {
	DisplayName string                  `json:"display_name" validate:"required"`
	CompanyName *string                 `json:"company_name,omitempty"`
	Kind        enums.ProfessionKind    `json:"kind" validate:"required"`
	Email       *string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string                 `json:"phone,omitempty"`
	Website     *string                 `json:"website,omitempty"`
	Notes       *string                 `json:"notes,omitempty"`
	Address     *addresses.AddressInput `json:"address,omitempty"`
}

// UpdateRequest carries partial updates. Nil means "leave unchanged"; the
// DetachAddress flag clears the address link.
type UpdateRequest struct {
	DisplayName   *string                 `json:"display_name,omitempty"`
	CompanyName   *string                 `json:"company_name,omitempty"`
	Email         *string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string                 `json:"phone,omitempty"`
	Website       *string                 `json:"website,omitempty"`
	Notes         *string                 `json:"notes,omitempty"`
	Address       *addresses.AddressInput `json:"address,omitempty"`
	DetachAddress bool                    `json:"detach_address,omitempty"`
	IsVerified    *bool                   `json:"is_verified,omitempty"`
}

// CreateResult reports whether the dedup resolver redirected to an existing row.
type CreateResult struct {
	Professional *ProfessionalDTO `json:"professional"`
	Deduplicated bool             `json:"deduplicated"`
}

// ListFilter narrows the directory listing.
type ListFilter struct {
	Kind  *enums.ProfessionKind
	Query string
}

func FromModel(p *models.Professional, address *models.Address) *ProfessionalDTO {
	if p == nil {
		return nil
	}
	return &ProfessionalDTO{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		CompanyName: p.CompanyName,
		Kind:        p.Kind,
		Email:       p.Email,
		Phone:       p.Phone,
		Website:     p.Website,
		Notes:       p.Notes,
		Address:     addresses.FromModel(address),
		IsVerified:  p.IsVerified,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
