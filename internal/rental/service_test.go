package rental

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// fakeStore emulates the rentals table including the unique
// active-rental index and the tenant scoping through the vehicle join.
type fakeStore struct {
	rentals  map[string]*Rental
	vehicles *fakeVehicles
}

func newFakeStore(vs *fakeVehicles) *fakeStore {
	return &fakeStore{rentals: map[string]*Rental{}, vehicles: vs}
}

func (f *fakeStore) CreateActive(_ context.Context, rt *Rental) error {
	for _, r := range f.rentals {
		if r.VehicleID == rt.VehicleID && r.ActiveKey != nil {
			return fmt.Errorf("%w: vehicle %s", apperr.ErrAlreadyRented, rt.VehicleID)
		}
	}
	cp := *rt
	f.rentals[rt.ID] = &cp
	return nil
}

func (f *fakeStore) GetInTenant(_ context.Context, tenant, id string) (*Rental, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, fmt.Errorf("%w: rental %s", apperr.ErrNotFound, id)
	}
	if v := f.vehicles.byID[r.VehicleID]; v == nil || v.Tenant != tenant {
		return nil, fmt.Errorf("%w: rental %s", apperr.ErrNotFound, id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, rt *Rental) error {
	cp := *rt
	f.rentals[rt.ID] = &cp
	return nil
}

func (f *fakeStore) CountActive(_ context.Context, vehicleID string) (int64, error) {
	var n int64
	for _, r := range f.rentals {
		if r.VehicleID == vehicleID && r.Status == StatusActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListActive(_ context.Context, tenant, _, _ string) ([]Row, error) {
	var rows []Row
	for _, r := range f.rentals {
		v := f.vehicles.byID[r.VehicleID]
		if r.Status != StatusActive || v == nil || v.Tenant != tenant {
			continue
		}
		rows = append(rows, Row{RentalID: r.ID, VehicleID: r.VehicleID, Plate: v.Plate,
			Holder: r.Holder, Location: r.Location, StartDate: r.StartDate})
	}
	return rows, nil
}

func (f *fakeStore) History(_ context.Context, tenant, _, _ string) ([]Row, error) {
	var rows []Row
	for _, r := range f.rentals {
		v := f.vehicles.byID[r.VehicleID]
		if r.Status != StatusFinished || v == nil || v.Tenant != tenant {
			continue
		}
		rows = append(rows, Row{RentalID: r.ID, VehicleID: r.VehicleID, ReturnDate: r.ReturnDate})
	}
	return rows, nil
}

func (f *fakeStore) Board(_ context.Context, tenant, _ string) ([]BoardRow, error) {
	var rows []BoardRow
	for _, v := range f.vehicles.byID {
		if v.Tenant != tenant {
			continue
		}
		state := VehicleFree
		for _, r := range f.rentals {
			if r.VehicleID == v.ID && r.Status == StatusActive {
				state = VehicleRented
			}
		}
		rows = append(rows, BoardRow{ID: v.ID, Plate: v.Plate, State: state})
	}
	return rows, nil
}

type fakeVehicles struct {
	byID map[string]*vehicle.Vehicle
}

func newFakeVehicles(vs ...*vehicle.Vehicle) *fakeVehicles {
	f := &fakeVehicles{byID: map[string]*vehicle.Vehicle{}}
	for _, v := range vs {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVehicles) GetInTenant(_ context.Context, tenant, id string) (*vehicle.Vehicle, error) {
	v, ok := f.byID[id]
	if !ok || v.Tenant != tenant {
		return nil, fmt.Errorf("%w: vehicle %s", apperr.ErrNotFound, id)
	}
	return v, nil
}

func (f *fakeVehicles) Delete(_ context.Context, tenant, id string) error {
	v, ok := f.byID[id]
	if !ok || v.Tenant != tenant {
		return fmt.Errorf("%w: vehicle %s", apperr.ErrNotFound, id)
	}
	delete(f.byID, id)
	return nil
}

func newTestService() (*Service, *fakeStore, *fakeVehicles) {
	vs := newFakeVehicles(
		&vehicle.Vehicle{ID: "v-1", Plate: "ABC1234", FleetCode: "F-01", Tenant: "JTD"},
		&vehicle.Vehicle{ID: "v-2", Plate: "XYZ9876", FleetCode: "F-02", Tenant: "PCM"},
	)
	rs := newFakeStore(vs)
	return NewService(rs, vs), rs, vs
}

func TestRentAndFinishScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rt, err := svc.Rent(ctx, "JTD", "v-1", RentInput{
		Holder: "Jane Doe", Location: "Yard 3", StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if rt.Status != StatusActive || rt.ReturnDate != "" {
		t.Fatalf("unexpected rental after rent: %+v", rt)
	}

	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rows, err := svc.ListActive(ctx, "JTD", "", "", now)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(rows) != 1 || rows[0].DaysInUse != 5 {
		t.Fatalf("unexpected active rows: %+v", rows)
	}

	fin, err := svc.Finish(ctx, "JTD", rt.ID, now)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if fin.Status != StatusFinished || fin.ReturnDate != "2024-01-15" {
		t.Fatalf("unexpected rental after finish: %+v", fin)
	}

	board, err := svc.Board(ctx, "JTD", "")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board) != 1 || board[0].State != VehicleFree {
		t.Fatalf("expected vehicle free after finish: %+v", board)
	}
}

func TestRentGuards(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in := RentInput{Holder: "Jane Doe", Location: "Yard 3", StartDate: "2024-01-10"}

	if _, err := svc.Rent(ctx, "JTD", "v-1", RentInput{Holder: "Jane Doe"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Rent(ctx, "JTD", "missing", in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// v-2 belongs to tenant PCM; JTD must not see it.
	if _, err := svc.Rent(ctx, "JTD", "v-2", in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found across tenants, got %v", err)
	}

	if _, err := svc.Rent(ctx, "JTD", "v-1", in); err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if _, err := svc.Rent(ctx, "JTD", "v-1", in); !errors.Is(err, apperr.ErrAlreadyRented) {
		t.Fatalf("expected already rented, got %v", err)
	}
}

func TestFinishIsNotRepeatable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	rt, err := svc.Rent(ctx, "JTD", "v-1", RentInput{Holder: "Jane Doe", Location: "Yard 3", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if _, err := svc.Finish(ctx, "JTD", rt.ID, now); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := svc.Finish(ctx, "JTD", rt.ID, now.Add(24*time.Hour)); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected second finish rejected, got %v", err)
	}
}

func TestFinishIsTenantScoped(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rt, err := svc.Rent(ctx, "JTD", "v-1", RentInput{Holder: "Jane Doe", Location: "Yard 3", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if _, err := svc.Finish(ctx, "PCM", rt.ID, time.Now()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected cross-tenant finish to fail, got %v", err)
	}
}

func TestDeleteVehicleGuard(t *testing.T) {
	svc, _, vs := newTestService()
	ctx := context.Background()

	rt, err := svc.Rent(ctx, "JTD", "v-1", RentInput{Holder: "Jane Doe", Location: "Yard 3", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if err := svc.DeleteVehicle(ctx, "JTD", "v-1"); !errors.Is(err, apperr.ErrVehicleInUse) {
		t.Fatalf("expected vehicle in use, got %v", err)
	}

	if _, err := svc.Finish(ctx, "JTD", rt.ID, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := svc.DeleteVehicle(ctx, "JTD", "v-1"); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}
	if _, ok := vs.byID["v-1"]; ok {
		t.Fatalf("expected vehicle removed")
	}

	// The finished rental row is kept in storage, but without its
	// vehicle the join drops it from the tenant-scoped listing.
	hist, err := svc.History(ctx, "JTD", "", "")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("expected orphaned history hidden from listing, got %+v", hist)
	}
}
