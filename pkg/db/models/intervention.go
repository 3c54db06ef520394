package models

import (
	"time"

	"github.com/google/uuid"
)

// Intervention is a veterinary or care event that may prompt a movement.
type Intervention struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HorseID        uuid.UUID  `gorm:"column:horse_id;type:uuid;not null;index"`
	Title          string     `gorm:"column:title;not null"`
	Notes          *string    `gorm:"column:notes"`
	ProfessionalID *uuid.UUID `gorm:"column:professional_id;type:uuid"`
	CreatedBy      uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
