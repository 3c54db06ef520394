package models

import (
	"time"

	"github.com/google/uuid"
)

// Address rows are append-mostly: the resolver reuses a normalized-equal row
// instead of inserting a near-duplicate.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Label      *string   `gorm:"column:label"`
	Line1      string    `gorm:"column:line1;not null"`
	Line2      *string   `gorm:"column:line2"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	City       string    `gorm:"column:city;not null"`
	Country    string    `gorm:"column:country;not null;default:'FR'"`
	Lat        *float64  `gorm:"column:lat"`
	Lng        *float64  `gorm:"column:lng"`
	CreatedBy  uuid.UUID `gorm:"column:created_by;type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
