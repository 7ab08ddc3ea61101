package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/logger"
	"github.com/frotafleet/frotafleet/internal/rental"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// Report kinds accepted by Export.
const (
	ReportVehicles = "vehicles"
	ReportRented   = "rented"
	ReportHistory  = "history"
)

// VehicleStore is the slice of the vehicle repo the transfer needs.
type VehicleStore interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	ListByTenant(ctx context.Context, tenant, plateFilter string) ([]vehicle.Vehicle, error)
}

// RentalStore is the slice of the rental repo the exports need.
type RentalStore interface {
	ListActive(ctx context.Context, tenant, plateFilter, holderFilter string) ([]rental.Row, error)
	History(ctx context.Context, tenant, fromDate, toDate string) ([]rental.Row, error)
}

// Service implements the bulk transfer paths. All queries are scoped to
// the caller's tenant, exports included.
type Service struct {
	vehicles VehicleStore
	rentals  RentalStore
	log      logger.Logger
}

func NewService(vehicles VehicleStore, rentals RentalStore, log logger.Logger) *Service {
	return &Service{vehicles: vehicles, rentals: rentals, log: log}
}

// ImportReport summarizes an import, with a per-row outcome list.
type ImportReport struct {
	Inserted int         `json:"inserted"`
	Skipped  int         `json:"skipped"`
	Rows     []RowResult `json:"rows"`
}

// ImportVehicles reads an xlsx upload and inserts one vehicle per data
// row, tagged with the importer's tenant. A missing required column
// rejects the whole file before any insert; per-row failures (bad
// types, duplicate plate) skip only that row and are reported back.
func (s *Service) ImportVehicles(ctx context.Context, tenant string, r io.Reader) (*ImportReport, error) {
	parsed, err := parseVehicleSheet(r)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for _, p := range parsed {
		result := RowResult{Row: p.num, Plate: p.input.Plate}
		if p.err != nil {
			result.Reason = p.err.Error()
			report.Skipped++
			report.Rows = append(report.Rows, result)
			s.log.Warnf("import row %d skipped: %v", p.num, p.err)
			continue
		}
		doc := p.input.Document
		if doc == "" {
			doc = vehicle.DocumentNo
		}
		v := &vehicle.Vehicle{
			ID:          uuid.NewString(),
			FleetCode:   p.input.FleetCode,
			Plate:       p.input.Plate,
			Axles:       p.input.Axles,
			FloorType:   p.input.FloorType,
			TrailerType: p.input.TrailerType,
			Length:      p.input.Length,
			Document:    doc,
			Tenant:      tenant,
		}
		if err := s.vehicles.Create(ctx, v); err != nil {
			if errors.Is(err, apperr.ErrConstraint) {
				result.Reason = err.Error()
				report.Skipped++
				report.Rows = append(report.Rows, result)
				s.log.Warnf("import row %d skipped: %v", p.num, err)
				continue
			}
			return nil, err
		}
		result.OK = true
		report.Inserted++
		report.Rows = append(report.Rows, result)
	}
	return report, nil
}

// Export renders the requested report as an xlsx workbook, returning
// the suggested filename and the file bytes.
func (s *Service) Export(ctx context.Context, tenant, kind string) (string, []byte, error) {
	var (
		headers []string
		data    [][]any
	)

	switch kind {
	case ReportVehicles:
		vehicles, err := s.vehicles.ListByTenant(ctx, tenant, "")
		if err != nil {
			return "", nil, err
		}
		headers = VehicleHeader
		for _, v := range vehicles {
			data = append(data, []any{v.FleetCode, v.Plate, v.Axles, v.FloorType, v.TrailerType, v.Length})
		}
	case ReportRented:
		rows, err := s.rentals.ListActive(ctx, tenant, "", "")
		if err != nil {
			return "", nil, err
		}
		headers = RentalHeader
		data = rentalData(rows)
	case ReportHistory:
		rows, err := s.rentals.History(ctx, tenant, "", "")
		if err != nil {
			return "", nil, err
		}
		headers = RentalHeader
		data = rentalData(rows)
	default:
		return "", nil, apperr.Validationf("unknown report kind %q", kind)
	}

	out, err := buildSheet("Relatório", headers, data)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s.xlsx", kind), out, nil
}

func rentalData(rows []rental.Row) [][]any {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.FleetCode, r.Plate, r.Axles, r.FloorType, r.TrailerType, r.Length,
			r.Holder, r.Location, r.StartDate, r.ReturnDate})
	}
	return data
}
