package rental

import "time"

// Status enumerates the rental lifecycle states (persisted as strings,
// values kept in Portuguese as the installed databases expect).
type Status string

const (
	StatusActive   Status = "Ativo"
	StatusFinished Status = "Finalizado"
)

// Derived vehicle states. A vehicle is rented iff an active rental row
// references it; the state is computed, never stored.
const (
	VehicleFree   = "Livre"
	VehicleRented = "Alugado"
)

// DateLayout is the calendar-date format used for rental start and
// return dates. Time of day is never recorded.
const DateLayout = "2006-01-02"

// Rental is the GORM model for the rentals table. Rows are append-only
// history: a rental is finished, never deleted.
//
// ActiveKey is 1 while the rental is active and NULL once finished, so
// the composite unique index makes "at most one active rental per
// vehicle" a storage-layer guarantee even under concurrent Rent calls.
type Rental struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	VehicleID  string    `gorm:"size:36;not null;index;uniqueIndex:uniq_active_rental,priority:1" json:"vehicle_id"`
	Holder     string    `gorm:"size:128;not null" json:"holder"`
	Location   string    `gorm:"size:128;not null" json:"location"`
	StartDate  string    `gorm:"size:10;not null" json:"start_date"`
	ReturnDate string    `gorm:"size:10" json:"return_date,omitempty"`
	Status     Status    `gorm:"type:varchar(16);index;not null" json:"status"`
	ActiveKey  *uint8    `gorm:"uniqueIndex:uniq_active_rental,priority:2" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
