package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Phone      string    `db:"phone" json:"phone"`
	Gender     *string   `db:"gender" json:"gender,omitempty"`
	BirthDate  *string   `db:"birth_date" json:"birth_date,omitempty"`
	Address    *string   `db:"address" json:"address,omitempty"`
	BloodGroup *string   `db:"blood_group" json:"blood_group,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
