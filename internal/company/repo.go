package company

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, c *Company) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: tax id or legal name already registered", apperr.ErrConstraint)
		}
		return err
	}
	return nil
}

// List returns all companies ordered by legal name.
func (r *Repo) List(ctx context.Context) ([]Company, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var companies []Company
	if err := r.db.WithContext(ctx).Order("legal_name").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
