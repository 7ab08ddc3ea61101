package rental

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

// Row is a rental joined with its vehicle, as shown in the active and
// history listings and in the spreadsheet exports.
type Row struct {
	RentalID    string  `json:"rental_id"`
	VehicleID   string  `json:"vehicle_id"`
	FleetCode   string  `json:"fleet_code"`
	Plate       string  `json:"plate"`
	Axles       int     `json:"axles"`
	FloorType   string  `json:"floor_type"`
	TrailerType string  `json:"trailer_type"`
	Length      float64 `json:"length"`
	Holder      string  `json:"holder"`
	Location    string  `json:"location"`
	StartDate   string  `json:"start_date"`
	ReturnDate  string  `json:"return_date,omitempty"`
	DaysInUse   int     `gorm:"-" json:"days_in_use,omitempty"`
}

// BoardRow is a vehicle annotated with its derived rental state, for
// the fleet overview listing.
type BoardRow struct {
	ID          string  `json:"id"`
	FleetCode   string  `json:"fleet_code"`
	Plate       string  `json:"plate"`
	Axles       int     `json:"axles"`
	FloorType   string  `json:"floor_type"`
	TrailerType string  `json:"trailer_type"`
	Length      float64 `json:"length"`
	Document    string  `json:"document"`
	State       string  `json:"state"`
}

const rowSelect = `rentals.id AS rental_id, rentals.vehicle_id, v.fleet_code, v.plate,
v.axles, v.floor_type, v.trailer_type, v.length,
rentals.holder, rentals.location, rentals.start_date, rentals.return_date`

// Repo is the data access layer for rentals. Tenant scoping on joined
// queries goes through the vehicle's tenant column.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

// CreateActive inserts a new active rental. The (vehicle_id, active_key)
// unique index rejects a second active row for the same vehicle; that
// breach is reported as AlreadyRented, not as a generic constraint error.
func (r *Repo) CreateActive(ctx context.Context, rt *Rental) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(rt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: vehicle %s", apperr.ErrAlreadyRented, rt.VehicleID)
		}
		return err
	}
	return nil
}

// GetInTenant loads a rental only when its vehicle belongs to the tenant.
func (r *Repo) GetInTenant(ctx context.Context, tenant, id string) (*Rental, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rt Rental
	err := db.Joins("JOIN vehicles v ON v.id = rentals.vehicle_id").
		Where("rentals.id = ? AND v.tenant = ?", id, tenant).
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: rental %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *Repo) Update(ctx context.Context, rt *Rental) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(rt).Error
}

// CountActive reports how many active rentals reference the vehicle.
// With the unique index in place the answer is 0 or 1.
func (r *Repo) CountActive(ctx context.Context, vehicleID string) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var n int64
	err := db.Model(&Rental{}).
		Where("vehicle_id = ? AND status = ?", vehicleID, StatusActive).
		Count(&n).Error
	return n, err
}

// ListActive returns the tenant's active rentals ordered by fleet code,
// with optional plate and holder substring filters.
func (r *Repo) ListActive(ctx context.Context, tenant, plateFilter, holderFilter string) ([]Row, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Model(&Rental{}).
		Select(rowSelect).
		Joins("JOIN vehicles v ON v.id = rentals.vehicle_id").
		Where("rentals.status = ? AND v.tenant = ?", StatusActive, tenant)
	if plateFilter != "" {
		q = q.Where("v.plate LIKE ?", "%"+plateFilter+"%")
	}
	if holderFilter != "" {
		q = q.Where("rentals.holder LIKE ?", "%"+holderFilter+"%")
	}
	var rows []Row
	if err := q.Order("v.fleet_code").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// History returns the tenant's finished rentals, newest return first,
// optionally restricted to a return-date range.
func (r *Repo) History(ctx context.Context, tenant, fromDate, toDate string) ([]Row, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Model(&Rental{}).
		Select(rowSelect).
		Joins("JOIN vehicles v ON v.id = rentals.vehicle_id").
		Where("rentals.status = ? AND v.tenant = ?", StatusFinished, tenant)
	if fromDate != "" && toDate != "" {
		q = q.Where("rentals.return_date BETWEEN ? AND ?", fromDate, toDate)
	}
	var rows []Row
	if err := q.Order("rentals.return_date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Board lists the tenant's vehicles with their derived state, ordered by
// fleet code, with an optional plate substring filter.
func (r *Repo) Board(ctx context.Context, tenant, plateFilter string) ([]BoardRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Table("vehicles").
		Select(`vehicles.id, vehicles.fleet_code, vehicles.plate, vehicles.axles,
vehicles.floor_type, vehicles.trailer_type, vehicles.length, vehicles.document,
CASE WHEN r.id IS NULL THEN ? ELSE ? END AS state`, VehicleFree, VehicleRented).
		Joins("LEFT JOIN rentals r ON r.vehicle_id = vehicles.id AND r.status = ?", StatusActive).
		Where("vehicles.tenant = ?", tenant)
	if plateFilter != "" {
		q = q.Where("vehicles.plate LIKE ?", "%"+plateFilter+"%")
	}
	var rows []BoardRow
	if err := q.Order("vehicles.fleet_code").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
