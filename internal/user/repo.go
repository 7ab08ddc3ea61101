package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

// Repo is the data access layer for user accounts. Login lookup is
// unscoped (logins are globally unique); everything else takes a tenant.
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

func (r *Repo) Create(ctx context.Context, u *User) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: login %s already taken", apperr.ErrConstraint, u.Login)
		}
		return err
	}
	return nil
}

// FindByLogin is the authentication lookup; not tenant-scoped.
func (r *Repo) FindByLogin(ctx context.Context, login string) (*User, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var u User
	err := db.Where("login = ?", login).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: login %s", apperr.ErrNotFound, login)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var u User
	err := db.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByTenant returns the tenant's users ordered by login.
func (r *Repo) ListByTenant(ctx context.Context, tenant string) ([]User, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var users []User
	if err := db.Where("tenant = ?", tenant).Order("login").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: login %s already taken", apperr.ErrConstraint, u.Login)
		}
		return err
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Where("id = ?", id).Delete(&User{}).Error
}
