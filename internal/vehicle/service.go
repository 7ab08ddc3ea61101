package vehicle

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

// Store is the persistence surface the service needs. *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, v *Vehicle) error
	GetInTenant(ctx context.Context, tenant, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	ListByTenant(ctx context.Context, tenant, plateFilter string) ([]Vehicle, error)
}

// Service holds the vehicle registry use cases. Deletion lives in the
// rental service because it is guarded by the rental lifecycle.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Input carries the registration form fields.
type Input struct {
	FleetCode   string  `json:"fleet_code"`
	Plate       string  `json:"plate"`
	Axles       int     `json:"axles"`
	FloorType   string  `json:"floor_type"`
	TrailerType string  `json:"trailer_type"`
	Length      float64 `json:"length"`
	Document    string  `json:"document"`
}

func (in *Input) normalize() error {
	in.FleetCode = strings.TrimSpace(in.FleetCode)
	in.Plate = strings.TrimSpace(in.Plate)
	in.FloorType = strings.TrimSpace(in.FloorType)
	in.TrailerType = strings.TrimSpace(in.TrailerType)
	in.Document = strings.TrimSpace(in.Document)
	if in.FleetCode == "" || in.Plate == "" {
		return apperr.Validationf("fleet code and plate are required")
	}
	if in.Document == "" {
		in.Document = DocumentNo
	}
	return nil
}

// Add registers a new vehicle under the caller's tenant.
func (s *Service) Add(ctx context.Context, tenant string, in Input) (*Vehicle, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	v := &Vehicle{
		ID:          uuid.NewString(),
		FleetCode:   in.FleetCode,
		Plate:       in.Plate,
		Axles:       in.Axles,
		FloorType:   in.FloorType,
		TrailerType: in.TrailerType,
		Length:      in.Length,
		Document:    in.Document,
		Tenant:      tenant,
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Edit updates an existing vehicle of the caller's tenant. The tenant
// tag itself never changes.
func (s *Service) Edit(ctx context.Context, tenant, id string, in Input) (*Vehicle, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	v, err := s.store.GetInTenant(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	v.FleetCode = in.FleetCode
	v.Plate = in.Plate
	v.Axles = in.Axles
	v.FloorType = in.FloorType
	v.TrailerType = in.TrailerType
	v.Length = in.Length
	v.Document = in.Document
	if err := s.store.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, tenant, id string) (*Vehicle, error) {
	return s.store.GetInTenant(ctx, tenant, id)
}

func (s *Service) List(ctx context.Context, tenant, plateFilter string) ([]Vehicle, error) {
	return s.store.ListByTenant(ctx, tenant, plateFilter)
}
