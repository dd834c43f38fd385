package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Medicine maps to the medicine table (the pharmacy stock catalog).
type Medicine struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	BrandID    *uuid.UUID `db:"brand_id" json:"brand_id,omitempty"`
	SupplierID *uuid.UUID `db:"supplier_id" json:"supplier_id,omitempty"`
	Price      float64    `db:"price" json:"price"`
	Stock      int        `db:"stock" json:"stock"`
	Expiry     *string    `db:"expiry" json:"expiry,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// PurchaseItem is one line of a purchase, stored as jsonb.
type PurchaseItem struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
}

// Purchase maps to the purchase table.
type Purchase struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	SupplierID uuid.UUID      `db:"supplier_id" json:"supplier_id"`
	Items      []PurchaseItem `db:"items" json:"items"`
	Total      float64        `db:"total" json:"total"`
	Date       string         `db:"date" json:"date"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// Brand maps to the brand table. Names are unique, case-insensitively.
type Brand struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Supplier maps to the supplier table.
type Supplier struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
