package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// Professional is a directory entry shared across users. Uniqueness on
// (kind, lower(email)) is enforced by a partial index; a violation at insert
// time is expected and resolved to the pre-existing row.
type Professional struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName string               `gorm:"column:display_name;not null"`
	CompanyName *string              `gorm:"column:company_name"`
	Kind        enums.ProfessionKind `gorm:"column:kind;type:profession_kind;not null"`
	Email       *string              `gorm:"column:email"`
	Phone       *string              `gorm:"column:phone"`
	Website     *string              `gorm:"column:website"`
	Notes       *string              `gorm:"column:notes"`
	AddressID   *uuid.UUID           `gorm:"column:address_id;type:uuid"`
	IsVerified  bool                 `gorm:"column:is_verified;not null;default:false"`
	CreatedBy   uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
