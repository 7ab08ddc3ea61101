package company

import (
	"time"
)

// Company is the GORM model for the companies table: the shared
// directory of rental counterparties. Companies are deliberately not
// tenant-scoped; every tenant reads the same directory.
type Company struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	TaxID             string    `gorm:"uniqueIndex;size:18;not null" json:"tax_id"`
	LegalName         string    `gorm:"uniqueIndex;size:128;not null" json:"legal_name"`
	StateRegistration string    `gorm:"size:32" json:"state_registration"`
	Address           string    `gorm:"size:128" json:"address"`
	Number            string    `gorm:"size:16" json:"number"`
	Phone             string    `gorm:"size:32" json:"phone"`
	Email             string    `gorm:"size:128" json:"email"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
