package vehicle

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

// Repo is the tenant-scoped data access layer for vehicles. Every read
// and mutation takes the caller's tenant and filters on it; there is no
// unscoped path.
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

func (r *Repo) Create(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: plate %s already registered", apperr.ErrConstraint, v.Plate)
		}
		return err
	}
	return nil
}

func (r *Repo) GetInTenant(ctx context.Context, tenant, id string) (*Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var v Vehicle
	err := db.Where("id = ? AND tenant = ?", id, tenant).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: vehicle %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) Update(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Save(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: plate %s already registered", apperr.ErrConstraint, v.Plate)
		}
		return err
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, tenant, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := db.Where("id = ? AND tenant = ?", id, tenant).Delete(&Vehicle{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: vehicle %s", apperr.ErrNotFound, id)
	}
	return nil
}

// ListByTenant returns the tenant's vehicles ordered by fleet code, with
// an optional plate substring filter.
func (r *Repo) ListByTenant(ctx context.Context, tenant, plateFilter string) ([]Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Model(&Vehicle{}).Where("tenant = ?", tenant)
	if plateFilter != "" {
		q = q.Where("plate LIKE ?", "%"+plateFilter+"%")
	}
	var vehicles []Vehicle
	if err := q.Order("fleet_code").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
