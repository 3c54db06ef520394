package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// Movement records one transport event for a horse. Rows are written once and
// never mutated or deleted. ReturnAt >= DepartAt is advisory only; the write
// path accepts inverted ranges.
type Movement struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HorseID        uuid.UUID           `gorm:"column:horse_id;type:uuid;not null;index"`
	FromAddressID  *uuid.UUID          `gorm:"column:from_address_id;type:uuid"`
	ToAddressID    uuid.UUID           `gorm:"column:to_address_id;type:uuid;not null"`
	ProfessionalID *uuid.UUID          `gorm:"column:professional_id;type:uuid"`
	InterventionID *uuid.UUID          `gorm:"column:intervention_id;type:uuid"`
	DepartAt       time.Time           `gorm:"column:depart_at;not null"`
	ReturnAt       *time.Time          `gorm:"column:return_at"`
	Reason         *string             `gorm:"column:reason"`
	Transport      enums.TransportMode `gorm:"column:transport;type:transport_mode;not null;default:'unknown'"`
	Manual         bool                `gorm:"column:manual;not null;default:true"`
	CreatedBy      uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name.
func (Movement) TableName() string {
	return "horse_movements"
}
