package staff

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*Doctor, int, error) {
	var result []*Doctor
	for _, d := range m.doctors {
		result = append(result, d)
	}
	return page(result, limit, offset)
}

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockUserRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	u.Status = status
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*User, int, error) {
	var result []*User
	for _, u := range m.users {
		result = append(result, u)
	}
	return page(result, limit, offset)
}

type mockRoleRepo struct {
	roles map[uuid.UUID]*Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[uuid.UUID]*Role)}
}

func (m *mockRoleRepo) Create(_ context.Context, r *Role) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.roles[r.ID] = r
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id uuid.UUID) (*Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockRoleRepo) Update(_ context.Context, r *Role) error {
	if _, ok := m.roles[r.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.roles[r.ID] = r
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*Role, int, error) {
	var result []*Role
	for _, r := range m.roles {
		result = append(result, r)
	}
	return page(result, limit, offset)
}

func page[T any](result []T, limit, offset int) ([]T, int, error) {
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func newTestService() *Service {
	return NewService(newMockDoctorRepo(), newMockUserRepo(), newMockRoleRepo())
}

// -- Tests --

func TestCreateDoctor(t *testing.T) {
	svc := newTestService()

	d := &Doctor{Name: "Dr. Rao", Email: "rao@clinic.test", CommissionRate: 10}
	if err := svc.CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != "active" {
		t.Errorf("expected default status active, got %s", d.Status)
	}
}

func TestCreateDoctor_Validation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name string
		d    *Doctor
	}{
		{"missing name", &Doctor{Email: "a@b.test"}},
		{"blank name", &Doctor{Name: "   ", Email: "a@b.test"}},
		{"missing email", &Doctor{Name: "Dr. Rao"}},
		{"bad commission", &Doctor{Name: "Dr. Rao", Email: "a@b.test", CommissionRate: 150}},
		{"bad status", &Doctor{Name: "Dr. Rao", Email: "a@b.test", Status: "retired"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateDoctor(context.Background(), tc.d); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := newTestService()

	u := &User{Name: "Asha", Email: "asha@clinic.test"}
	if err := svc.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := &User{Name: "Other", Email: "ASHA@clinic.test"}
	if err := svc.CreateUser(context.Background(), dup); err == nil {
		t.Error("expected duplicate email error")
	}
}

func TestSetUserStatus(t *testing.T) {
	svc := newTestService()

	u := &User{Name: "Asha", Email: "asha@clinic.test"}
	svc.CreateUser(context.Background(), u)

	if err := svc.SetUserStatus(context.Background(), u.ID, "inactive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.GetUser(context.Background(), u.ID)
	if got.Status != "inactive" {
		t.Errorf("expected inactive, got %s", got.Status)
	}

	if err := svc.SetUserStatus(context.Background(), u.ID, "suspended"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestRoleCRUD(t *testing.T) {
	svc := newTestService()

	r := &Role{Name: "accountant", Permissions: []string{"billing.read", "billing.write"}}
	if err := svc.CreateRole(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Permissions = append(r.Permissions, "reports.read")
	if err := svc.UpdateRole(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.GetRole(context.Background(), r.ID)
	if len(got.Permissions) != 3 {
		t.Errorf("expected 3 permissions, got %d", len(got.Permissions))
	}

	if err := svc.DeleteRole(context.Background(), r.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetRole(context.Background(), r.ID); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestCreateRole_MissingName(t *testing.T) {
	svc := newTestService()
	if err := svc.CreateRole(context.Background(), &Role{}); err == nil {
		t.Error("expected error for missing name")
	}
}
