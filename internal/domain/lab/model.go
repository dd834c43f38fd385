package lab

import (
	"time"

	"github.com/google/uuid"
)

// LabTest maps to the lab_test table (the test catalog).
type LabTest struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Price          float64   `db:"price" json:"price"`
	Unit           *string   `db:"unit" json:"unit,omitempty"`
	ReferenceRange *string   `db:"reference_range" json:"reference_range,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// LabBooking maps to the lab_booking table. TestIDs references lab_test rows.
type LabBooking struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	TestIDs   []string  `db:"test_ids" json:"tests"`
	Date      string    `db:"date" json:"date"`
	Total     float64   `db:"total" json:"total"`
	Paid      bool      `db:"paid" json:"paid"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// LabResult maps to the lab_result table.
type LabResult struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BookingID uuid.UUID `db:"booking_id" json:"booking_id"`
	TestID    uuid.UUID `db:"test_id" json:"test_id"`
	Value     string    `db:"value" json:"value"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
