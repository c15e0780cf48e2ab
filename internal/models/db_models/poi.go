package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// POI is the stored candidate record. Category labels and ids live on the
// row as arrays; OpeningHours keeps the provider's JSON payload verbatim
// so the engine can parse periods without a schema migration per provider.
type POI struct {
	BaseModel
	ExternalID   string `gorm:"index"`
	Name         string `gorm:"not null"`
	CityID       uuid.UUID
	Lat          float64
	Lng          float64
	Address      string
	Rating       float64
	Website      string
	Phone        string
	Photos       pq.StringArray `gorm:"type:text[]"`
	OpeningHours string
	Categories   pq.StringArray `gorm:"type:text[]"`
	CategoryIDs  pq.Int64Array  `gorm:"type:bigint[]"`
	IsChain      bool
}
