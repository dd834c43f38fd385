package lab

import (
	"context"

	"github.com/google/uuid"
)

type LabTestRepository interface {
	Create(ctx context.Context, t *LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error)
	Update(ctx context.Context, t *LabTest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error)
}

type LabBookingRepository interface {
	Create(ctx context.Context, b *LabBooking) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabBooking, error)
	Update(ctx context.Context, b *LabBooking) error
	MarkPaid(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabBooking, int, error)
}

type LabResultRepository interface {
	Create(ctx context.Context, r *LabResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabResult, error)
	Update(ctx context.Context, r *LabResult) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*LabResult, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabResult, int, error)
}
