package rental

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// Store is the rental persistence surface. *Repo satisfies it.
type Store interface {
	CreateActive(ctx context.Context, rt *Rental) error
	GetInTenant(ctx context.Context, tenant, id string) (*Rental, error)
	Update(ctx context.Context, rt *Rental) error
	CountActive(ctx context.Context, vehicleID string) (int64, error)
	ListActive(ctx context.Context, tenant, plateFilter, holderFilter string) ([]Row, error)
	History(ctx context.Context, tenant, fromDate, toDate string) ([]Row, error)
	Board(ctx context.Context, tenant, plateFilter string) ([]BoardRow, error)
}

// VehicleStore is the slice of the vehicle repo the lifecycle needs.
type VehicleStore interface {
	GetInTenant(ctx context.Context, tenant, id string) (*vehicle.Vehicle, error)
	Delete(ctx context.Context, tenant, id string) error
}

// Service implements the rental lifecycle: rent, finish, and the
// lifecycle-guarded vehicle deletion.
type Service struct {
	rentals  Store
	vehicles VehicleStore
}

func NewService(rentals Store, vehicles VehicleStore) *Service {
	return &Service{rentals: rentals, vehicles: vehicles}
}

// RentInput carries the rental form fields.
type RentInput struct {
	Holder    string `json:"holder"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
}

// Rent opens a rental for a free vehicle of the caller's tenant. The
// pre-check gives a friendly error; the unique active-rental index makes
// the guard hold under concurrent calls regardless.
func (s *Service) Rent(ctx context.Context, tenant, vehicleID string, in RentInput) (*Rental, error) {
	in.Holder = strings.TrimSpace(in.Holder)
	in.Location = strings.TrimSpace(in.Location)
	in.StartDate = strings.TrimSpace(in.StartDate)
	if in.Holder == "" || in.Location == "" || in.StartDate == "" {
		return nil, apperr.Validationf("holder, location and start date are required")
	}
	if _, err := time.Parse(DateLayout, in.StartDate); err != nil {
		return nil, apperr.Validationf("start date must be %s", DateLayout)
	}

	v, err := s.vehicles.GetInTenant(ctx, tenant, vehicleID)
	if err != nil {
		return nil, err
	}

	n, err := s.rentals.CountActive(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: vehicle %s", apperr.ErrAlreadyRented, v.ID)
	}

	key := uint8(1)
	rt := &Rental{
		ID:        uuid.NewString(),
		VehicleID: v.ID,
		Holder:    in.Holder,
		Location:  in.Location,
		StartDate: in.StartDate,
		Status:    StatusActive,
		ActiveKey: &key,
	}
	if err := s.rentals.CreateActive(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// Finish closes an active rental, stamping the return date with now.
// Finished rentals are terminal; a second finish is rejected.
func (s *Service) Finish(ctx context.Context, tenant, rentalID string, now time.Time) (*Rental, error) {
	rt, err := s.rentals.GetInTenant(ctx, tenant, rentalID)
	if err != nil {
		return nil, err
	}
	if err := ApplyFinish(rt, now); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if err := s.rentals.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteVehicle removes a vehicle unless an active rental references it.
// Historical rentals are kept; their vehicle reference goes stale on
// purpose (rentals are append-only history).
func (s *Service) DeleteVehicle(ctx context.Context, tenant, vehicleID string) error {
	v, err := s.vehicles.GetInTenant(ctx, tenant, vehicleID)
	if err != nil {
		return err
	}
	n, err := s.rentals.CountActive(ctx, v.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: vehicle %s has an active rental", apperr.ErrVehicleInUse, v.ID)
	}
	return s.vehicles.Delete(ctx, tenant, v.ID)
}

// ListActive returns the tenant's active rentals annotated with days in
// use as of now.
func (s *Service) ListActive(ctx context.Context, tenant, plateFilter, holderFilter string, now time.Time) ([]Row, error) {
	rows, err := s.rentals.ListActive(ctx, tenant, plateFilter, holderFilter)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].DaysInUse = DaysInUse(rows[i].StartDate, now)
	}
	return rows, nil
}

// History returns the tenant's finished rentals, newest return first.
func (s *Service) History(ctx context.Context, tenant, fromDate, toDate string) ([]Row, error) {
	return s.rentals.History(ctx, tenant, fromDate, toDate)
}

// Board lists the tenant's vehicles with their derived Free/Rented state.
func (s *Service) Board(ctx context.Context, tenant, plateFilter string) ([]BoardRow, error) {
	return s.rentals.Board(ctx, tenant, plateFilter)
}
