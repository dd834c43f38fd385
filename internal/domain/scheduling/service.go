package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

var validAppointmentStatuses = map[string]bool{
	"pending": true, "confirmed": true, "completed": true, "cancelled": true,
}

// normalizeSlots trims each slot and drops blank entries.
func normalizeSlots(slots []string) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.Date == "" {
		return fmt.Errorf("date is required")
	}
	a.Slots = normalizeSlots(a.Slots)
	if len(a.Slots) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	if a.Status == "" {
		a.Status = "pending"
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.Date == "" {
		return fmt.Errorf("date is required")
	}
	a.Slots = normalizeSlots(a.Slots)
	if len(a.Slots) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	if a.Status != "" && !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) SetAppointmentStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validAppointmentStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	return s.appointments.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.Search(ctx, params, limit, offset)
}
