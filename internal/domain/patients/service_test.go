package patients

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
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
	return NewService(newMockPatientRepo())
}

func TestCreatePatient(t *testing.T) {
	svc := newTestService()

	p := &Patient{Name: "Meera", Phone: "9000000001"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	svc := newTestService()

	bad := "unknown"
	cases := []struct {
		name string
		p    *Patient
	}{
		{"missing name", &Patient{Phone: "9000000001"}},
		{"missing phone", &Patient{Name: "Meera"}},
		{"bad gender", &Patient{Name: "Meera", Phone: "9000000001", Gender: &bad}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreatePatient(context.Background(), tc.p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdatePatient(t *testing.T) {
	svc := newTestService()

	p := &Patient{Name: "Meera", Phone: "9000000001"}
	svc.CreatePatient(context.Background(), p)

	p.Phone = "9000000002"
	if err := svc.UpdatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.GetPatient(context.Background(), p.ID)
	if got.Phone != "9000000002" {
		t.Errorf("expected updated phone, got %s", got.Phone)
	}
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()

	p := &Patient{Name: "Meera", Phone: "9000000001"}
	svc.CreatePatient(context.Background(), p)

	if err := svc.DeletePatient(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), p.ID); err == nil {
		t.Error("expected not found after delete")
	}
}
