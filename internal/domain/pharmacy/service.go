package pharmacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrDuplicateName is returned when a brand name collides with an existing
// one, compared case-insensitively. The server is the source of truth for
// uniqueness; client-side checks are a UX nicety only.
var ErrDuplicateName = errors.New("name already exists")

type Service struct {
	medicines MedicineRepository
	purchases PurchaseRepository
	brands    BrandRepository
	suppliers SupplierRepository
}

func NewService(
	medicines MedicineRepository,
	purchases PurchaseRepository,
	brands BrandRepository,
	suppliers SupplierRepository,
) *Service {
	return &Service{
		medicines: medicines,
		purchases: purchases,
		brands:    brands,
		suppliers: suppliers,
	}
}

// -- Medicine --

func (s *Service) CreateMedicine(ctx context.Context, m *Medicine) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if m.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return s.medicines.Create(ctx, m)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if m.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return s.medicines.Update(ctx, m)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) SearchMedicines(ctx context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.Search(ctx, params, limit, offset)
}

// -- Purchase --

func (s *Service) CreatePurchase(ctx context.Context, p *Purchase) error {
	if p.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range p.Items {
		if item.MedicineID == uuid.Nil {
			return fmt.Errorf("item %d: medicine_id is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
	}
	if p.Date == "" {
		return fmt.Errorf("date is required")
	}
	return s.purchases.Create(ctx, p)
}

func (s *Service) GetPurchase(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	return s.purchases.GetByID(ctx, id)
}

func (s *Service) UpdatePurchase(ctx context.Context, p *Purchase) error {
	if len(p.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	if p.Date == "" {
		return fmt.Errorf("date is required")
	}
	return s.purchases.Update(ctx, p)
}

func (s *Service) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	return s.purchases.Delete(ctx, id)
}

func (s *Service) SearchPurchases(ctx context.Context, params map[string]string, limit, offset int) ([]*Purchase, int, error) {
	return s.purchases.Search(ctx, params, limit, offset)
}

// -- Brand --

func (s *Service) CreateBrand(ctx context.Context, b *Brand) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if existing, err := s.brands.GetByName(ctx, b.Name); err == nil && existing != nil {
		return fmt.Errorf("brand %q: %w", b.Name, ErrDuplicateName)
	}
	return s.brands.Create(ctx, b)
}

func (s *Service) GetBrand(ctx context.Context, id uuid.UUID) (*Brand, error) {
	return s.brands.GetByID(ctx, id)
}

func (s *Service) UpdateBrand(ctx context.Context, b *Brand) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}
	// A rename may collide with any brand other than the one being edited.
	if existing, err := s.brands.GetByName(ctx, b.Name); err == nil && existing != nil && existing.ID != b.ID {
		return fmt.Errorf("brand %q: %w", b.Name, ErrDuplicateName)
	}
	return s.brands.Update(ctx, b)
}

func (s *Service) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.brands.Delete(ctx, id)
}

func (s *Service) SearchBrands(ctx context.Context, params map[string]string, limit, offset int) ([]*Brand, int, error) {
	return s.brands.Search(ctx, params, limit, offset)
}

// -- Supplier --

func (s *Service) CreateSupplier(ctx context.Context, sp *Supplier) error {
	if strings.TrimSpace(sp.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.suppliers.Create(ctx, sp)
}

func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *Service) UpdateSupplier(ctx context.Context, sp *Supplier) error {
	if strings.TrimSpace(sp.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.suppliers.Update(ctx, sp)
}

func (s *Service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return s.suppliers.Delete(ctx, id)
}

func (s *Service) SearchSuppliers(ctx context.Context, params map[string]string, limit, offset int) ([]*Supplier, int, error) {
	return s.suppliers.Search(ctx, params, limit, offset)
}
