package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	doctors DoctorRepository
	users   UserRepository
	roles   RoleRepository
}

func NewService(doctors DoctorRepository, users UserRepository, roles RoleRepository) *Service {
	return &Service{doctors: doctors, users: users, roles: roles}
}

var validStaffStatuses = map[string]bool{
	"active": true, "inactive": true,
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.CommissionRate < 0 || d.CommissionRate > 100 {
		return fmt.Errorf("commission_rate must be between 0 and 100")
	}
	if d.Status == "" {
		d.Status = "active"
	}
	if !validStaffStatuses[d.Status] {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if d.CommissionRate < 0 || d.CommissionRate > 100 {
		return fmt.Errorf("commission_rate must be between 0 and 100")
	}
	if d.Status != "" && !validStaffStatuses[d.Status] {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) SearchDoctors(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.Search(ctx, params, limit, offset)
}

// -- User --

func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if existing, err := s.users.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return fmt.Errorf("user with email %s already exists", u.Email)
	}
	if u.Status == "" {
		u.Status = "active"
	}
	if !validStaffStatuses[u.Status] {
		return fmt.Errorf("invalid status: %s", u.Status)
	}
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if u.Status != "" && !validStaffStatuses[u.Status] {
		return fmt.Errorf("invalid status: %s", u.Status)
	}
	return s.users.Update(ctx, u)
}

func (s *Service) SetUserStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStaffStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	return s.users.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) SearchUsers(ctx context.Context, params map[string]string, limit, offset int) ([]*User, int, error) {
	return s.users.Search(ctx, params, limit, offset)
}

// -- Role --

func (s *Service) CreateRole(ctx context.Context, r *Role) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.roles.Create(ctx, r)
}

func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (*Role, error) {
	return s.roles.GetByID(ctx, id)
}

func (s *Service) UpdateRole(ctx context.Context, r *Role) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.roles.Update(ctx, r)
}

func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return s.roles.Delete(ctx, id)
}

func (s *Service) SearchRoles(ctx context.Context, params map[string]string, limit, offset int) ([]*Role, int, error) {
	return s.roles.Search(ctx, params, limit, offset)
}
