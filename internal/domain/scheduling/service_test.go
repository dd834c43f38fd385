package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockAppointmentRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appts[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.appts[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.appts[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	a.Status = status
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appts, id)
	return nil
}

func (m *mockAppointmentRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appts {
		result = append(result, a)
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
	return NewService(newMockAppointmentRepo())
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      "2024-05-01",
		Slots:     []string{"09:00", "09:30"},
	}
}

func TestCreateAppointment(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if a.Status != "pending" {
		t.Errorf("expected default status pending, got %s", a.Status)
	}
}

func TestCreateAppointment_SlotNormalization(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	a.Slots = []string{" 09:00 ", "", "  ", "09:30"}
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Slots) != 2 || a.Slots[0] != "09:00" || a.Slots[1] != "09:30" {
		t.Errorf("expected [09:00 09:30], got %v", a.Slots)
	}
}

func TestCreateAppointment_MissingDate(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	a.Date = ""
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Error("expected error for missing date")
	}
}

func TestCreateAppointment_NoSlots(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	a.Slots = []string{"", "   "}
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Error("expected error for all-blank slots")
	}
}

func TestCreateAppointment_MissingPatient(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	a.PatientID = uuid.Nil
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestCreateAppointment_InvalidStatus(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	a.Status = "rescheduled"
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestUpdateAppointment(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)

	a.Date = "2024-06-01"
	if err := svc.UpdateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.GetAppointment(context.Background(), a.ID)
	if got.Date != "2024-06-01" {
		t.Errorf("expected updated date, got %s", got.Date)
	}
}

func TestSetAppointmentStatus(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)

	if err := svc.SetAppointmentStatus(context.Background(), a.ID, "confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.GetAppointment(context.Background(), a.ID)
	if got.Status != "confirmed" {
		t.Errorf("expected confirmed, got %s", got.Status)
	}

	if err := svc.SetAppointmentStatus(context.Background(), a.ID, "bogus"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc := newTestService()

	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)

	if err := svc.DeleteAppointment(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetAppointment(context.Background(), a.ID); err == nil {
		t.Error("expected not found after delete")
	}
}
