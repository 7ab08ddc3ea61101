package company

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

// Store is the persistence surface the service needs. *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, c *Company) error
	List(ctx context.Context) ([]Company, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Input carries the company registration form fields.
type Input struct {
	TaxID             string `json:"tax_id"`
	LegalName         string `json:"legal_name"`
	StateRegistration string `json:"state_registration"`
	Address           string `json:"address"`
	Number            string `json:"number"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
}

// Register adds a company to the shared directory.
func (s *Service) Register(ctx context.Context, in Input) (*Company, error) {
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.LegalName = strings.TrimSpace(in.LegalName)
	if in.TaxID == "" || in.LegalName == "" {
		return nil, apperr.Validationf("tax id and legal name are required")
	}
	c := &Company{
		ID:                uuid.NewString(),
		TaxID:             in.TaxID,
		LegalName:         in.LegalName,
		StateRegistration: strings.TrimSpace(in.StateRegistration),
		Address:           strings.TrimSpace(in.Address),
		Number:            strings.TrimSpace(in.Number),
		Phone:             strings.TrimSpace(in.Phone),
		Email:             strings.TrimSpace(in.Email),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the whole directory ordered by legal name.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.store.List(ctx)
}
