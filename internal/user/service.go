package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/auth"
	"github.com/frotafleet/frotafleet/internal/common/logger"
)

// Store is the account persistence surface. *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByLogin(ctx context.Context, login string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListByTenant(ctx context.Context, tenant string) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

// Service implements authentication and tenant-scoped account
// management.
type Service struct {
	store Store
	log   logger.Logger
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Login verifies the credentials and returns the session identity. An
// unknown login and a wrong password produce the same error, so the
// endpoint is not a user-exists oracle.
func (s *Service) Login(ctx context.Context, login, password string) (auth.Session, error) {
	login = strings.TrimSpace(login)
	u, err := s.store.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Session{}, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
		}
		return auth.Session{}, err
	}
	if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		return auth.Session{}, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}
	return auth.Session{
		AccountID: u.ID,
		Login:     u.Login,
		Role:      u.Role,
		Tenant:    u.Tenant,
	}, nil
}

// CreateInput carries the admin user-creation form fields. The tenant is
// always the admin's own and is not part of the input.
type CreateInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create registers a new account under the admin's tenant.
func (s *Service) Create(ctx context.Context, sess auth.Session, in CreateInput) (*User, error) {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" || in.Password == "" {
		return nil, apperr.Validationf("login and password are required")
	}
	role := in.Role
	if role != auth.RoleAdmin {
		role = auth.RoleRegular
	}
	u, err := s.newUser(in.Login, in.Password, role, sess.Tenant)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateInput carries the admin user-edit form fields. An empty password
// keeps the current one.
type UpdateInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Update edits an account of the admin's own tenant; editing another
// tenant's user is forbidden.
func (s *Service) Update(ctx context.Context, sess auth.Session, id string, in UpdateInput) (*User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Tenant != sess.Tenant {
		return nil, apperr.Forbiddenf("user belongs to another tenant")
	}
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" {
		return nil, apperr.Validationf("login is required")
	}
	u.Login = in.Login
	if in.Role == auth.RoleAdmin || in.Role == auth.RoleRegular {
		u.Role = in.Role
	}
	if in.Password != "" {
		if err := s.setPassword(u, in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account of the admin's own tenant. Admins cannot
// delete themselves.
func (s *Service) Delete(ctx context.Context, sess auth.Session, id string) error {
	if id == sess.AccountID {
		return apperr.Validationf("cannot delete own account")
	}
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Tenant != sess.Tenant {
		return apperr.Forbiddenf("user belongs to another tenant")
	}
	return s.store.Delete(ctx, u.ID)
}

// List returns the users of the caller's tenant ordered by login.
func (s *Service) List(ctx context.Context, sess auth.Session) ([]User, error) {
	return s.store.ListByTenant(ctx, sess.Tenant)
}

// ProfileInput carries the self-service profile form fields.
type ProfileInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UpdateProfile lets a user change their own login and password.
func (s *Service) UpdateProfile(ctx context.Context, sess auth.Session, in ProfileInput) (*User, error) {
	u, err := s.store.GetByID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" {
		return nil, apperr.Validationf("login is required")
	}
	u.Login = in.Login
	if in.Password != "" {
		if err := s.setPassword(u, in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Seed creates one bootstrap admin per built-in tenant, skipping tenants
// whose admin login already exists. The admin login equals the tenant
// name, as the installed databases expect.
func (s *Service) Seed(ctx context.Context, tenants []string, initialPassword string) error {
	for _, tenant := range tenants {
		if _, err := s.store.FindByLogin(ctx, tenant); err == nil {
			continue
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		u, err := s.newUser(tenant, initialPassword, auth.RoleAdmin, tenant)
		if err != nil {
			return err
		}
		if err := s.store.Create(ctx, u); err != nil {
			return err
		}
		s.log.Warnf("seeded bootstrap admin %q for tenant %q, rotate its password", u.Login, tenant)
	}
	return nil
}

func (s *Service) newUser(login, password, role, tenant string) (*User, error) {
	u := &User{
		ID:     uuid.NewString(),
		Login:  login,
		Role:   role,
		Tenant: tenant,
	}
	if err := s.setPassword(u, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) setPassword(u *User, password string) error {
	salt, err := GenerateSaltHex()
	if err != nil {
		return err
	}
	hash, err := HashPassword(password, salt)
	if err != nil {
		return err
	}
	u.PasswordSalt = salt
	u.PasswordHash = hash
	return nil
}
