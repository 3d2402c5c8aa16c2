package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Products are immutable after creation.
type Product struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU           string    `gorm:"column:sku;not null;uniqueIndex"`
	Name          string    `gorm:"column:name;not null;index"`
	Category      string    `gorm:"column:category;not null;index"`
	UnitOfMeasure string    `gorm:"column:unit_of_measure;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
