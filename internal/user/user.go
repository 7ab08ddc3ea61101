package user

import (
	"time"
)

// User is the GORM model for the users table. Login is unique across
// the system; the tenant column scopes listings and admin management.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Login        string    `gorm:"uniqueIndex;size:64;not null" json:"login"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	PasswordSalt string    `gorm:"size:64;not null" json:"-"`
	Role         string    `gorm:"size:16;not null" json:"role"`
	Tenant       string    `gorm:"index;size:32;not null" json:"tenant"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
