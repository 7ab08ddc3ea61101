package vehicle

import (
	"time"
)

// Document flag values ("Documento" on the registration form).
const (
	DocumentYes = "Sim"
	DocumentNo  = "Não"
)

// Vehicle is the GORM model for the vehicles table. The plate is unique
// across the whole system; the tenant column partitions everything else.
type Vehicle struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	FleetCode   string    `gorm:"size:32;not null" json:"fleet_code"`
	Plate       string    `gorm:"uniqueIndex;size:16;not null" json:"plate"`
	Axles       int       `gorm:"not null" json:"axles"`
	FloorType   string    `gorm:"size:32" json:"floor_type"`
	TrailerType string    `gorm:"size:64" json:"trailer_type"`
	Length      float64   `gorm:"not null" json:"length"`
	Document    string    `gorm:"size:8;not null;default:'Não'" json:"document"`
	Tenant      string    `gorm:"index;size:32;not null" json:"tenant"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
