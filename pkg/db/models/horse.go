package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// Horse is owned by exactly one user; only the owner may mutate or delete it.
type Horse struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID    uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index"`
	Name       string         `gorm:"column:name;not null"`
	Birthdate  *time.Time     `gorm:"column:birthdate;type:date"`
	Sex        enums.HorseSex `gorm:"column:sex;type:horse_sex;not null;default:'unknown'"`
	SireNumber *string        `gorm:"column:sire_number"`
	PhotoPath  *string        `gorm:"column:photo_path"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
