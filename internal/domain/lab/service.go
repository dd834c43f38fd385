package lab

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	tests    LabTestRepository
	bookings LabBookingRepository
	results  LabResultRepository
}

func NewService(tests LabTestRepository, bookings LabBookingRepository, results LabResultRepository) *Service {
	return &Service{tests: tests, bookings: bookings, results: results}
}

// -- LabTest --

func (s *Service) CreateLabTest(ctx context.Context, t *LabTest) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if t.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return s.tests.Create(ctx, t)
}

func (s *Service) GetLabTest(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return s.tests.GetByID(ctx, id)
}

func (s *Service) UpdateLabTest(ctx context.Context, t *LabTest) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if t.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return s.tests.Update(ctx, t)
}

func (s *Service) DeleteLabTest(ctx context.Context, id uuid.UUID) error {
	return s.tests.Delete(ctx, id)
}

func (s *Service) SearchLabTests(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error) {
	return s.tests.Search(ctx, params, limit, offset)
}

// -- LabBooking --

func (s *Service) CreateLabBooking(ctx context.Context, b *LabBooking) error {
	if b.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if len(b.TestIDs) == 0 {
		return fmt.Errorf("at least one test is required")
	}
	if b.Date == "" {
		return fmt.Errorf("date is required")
	}
	if b.Total < 0 {
		return fmt.Errorf("total must not be negative")
	}
	return s.bookings.Create(ctx, b)
}

func (s *Service) GetLabBooking(ctx context.Context, id uuid.UUID) (*LabBooking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) UpdateLabBooking(ctx context.Context, b *LabBooking) error {
	if len(b.TestIDs) == 0 {
		return fmt.Errorf("at least one test is required")
	}
	if b.Date == "" {
		return fmt.Errorf("date is required")
	}
	return s.bookings.Update(ctx, b)
}

func (s *Service) MarkLabBookingPaid(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return fmt.Errorf("booking not found")
	}
	return s.bookings.MarkPaid(ctx, id)
}

func (s *Service) DeleteLabBooking(ctx context.Context, id uuid.UUID) error {
	return s.bookings.Delete(ctx, id)
}

func (s *Service) SearchLabBookings(ctx context.Context, params map[string]string, limit, offset int) ([]*LabBooking, int, error) {
	return s.bookings.Search(ctx, params, limit, offset)
}

// -- LabResult --

func (s *Service) CreateLabResult(ctx context.Context, lr *LabResult) error {
	if lr.BookingID == uuid.Nil {
		return fmt.Errorf("booking_id is required")
	}
	if lr.TestID == uuid.Nil {
		return fmt.Errorf("test_id is required")
	}
	if lr.Value == "" {
		return fmt.Errorf("value is required")
	}
	return s.results.Create(ctx, lr)
}

func (s *Service) GetLabResult(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	return s.results.GetByID(ctx, id)
}

func (s *Service) UpdateLabResult(ctx context.Context, lr *LabResult) error {
	if lr.Value == "" {
		return fmt.Errorf("value is required")
	}
	return s.results.Update(ctx, lr)
}

func (s *Service) DeleteLabResult(ctx context.Context, id uuid.UUID) error {
	return s.results.Delete(ctx, id)
}

func (s *Service) ListLabResultsByBooking(ctx context.Context, bookingID uuid.UUID) ([]*LabResult, error) {
	return s.results.ListByBooking(ctx, bookingID)
}

func (s *Service) SearchLabResults(ctx context.Context, params map[string]string, limit, offset int) ([]*LabResult, int, error) {
	return s.results.Search(ctx, params, limit, offset)
}
