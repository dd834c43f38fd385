package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDuplicateName is returned when a tax or tax group name collides with an
// existing one, compared case-insensitively.
var ErrDuplicateName = errors.New("name already exists")

var validFinanceKinds = map[string]bool{
	"income":  true,
	"expense": true,
}

type Service struct {
	taxes   TaxRepository
	groups  TaxGroupRepository
	records FinanceRecordRepository
}

func NewService(taxes TaxRepository, groups TaxGroupRepository, records FinanceRecordRepository) *Service {
	return &Service{taxes: taxes, groups: groups, records: records}
}

// =========== Tax ===========

func (s *Service) CreateTax(ctx context.Context, t *Tax) error {
	if t.Name == "" {
		return fmt.Errorf("tax name is required")
	}
	if t.Rate < 0 || t.Rate > 100 {
		return fmt.Errorf("tax rate must be between 0 and 100")
	}
	if existing, err := s.taxes.GetByName(ctx, t.Name); err == nil && existing != nil {
		return fmt.Errorf("tax %q: %w", t.Name, ErrDuplicateName)
	}
	return s.taxes.Create(ctx, t)
}

func (s *Service) GetTax(ctx context.Context, id uuid.UUID) (*Tax, error) {
	return s.taxes.GetByID(ctx, id)
}

func (s *Service) UpdateTax(ctx context.Context, t *Tax) error {
	if t.Name == "" {
		return fmt.Errorf("tax name is required")
	}
	if t.Rate < 0 || t.Rate > 100 {
		return fmt.Errorf("tax rate must be between 0 and 100")
	}
	if existing, err := s.taxes.GetByName(ctx, t.Name); err == nil && existing != nil && existing.ID != t.ID {
		return fmt.Errorf("tax %q: %w", t.Name, ErrDuplicateName)
	}
	return s.taxes.Update(ctx, t)
}

func (s *Service) DeleteTax(ctx context.Context, id uuid.UUID) error {
	return s.taxes.Delete(ctx, id)
}

func (s *Service) SearchTaxes(ctx context.Context, params map[string]string, limit, offset int) ([]*Tax, int, error) {
	return s.taxes.Search(ctx, params, limit, offset)
}

// =========== TaxGroup ===========

func (s *Service) CreateTaxGroup(ctx context.Context, g *TaxGroup) error {
	if g.Name == "" {
		return fmt.Errorf("tax group name is required")
	}
	if existing, err := s.groups.GetByName(ctx, g.Name); err == nil && existing != nil {
		return fmt.Errorf("tax group %q: %w", g.Name, ErrDuplicateName)
	}
	return s.groups.Create(ctx, g)
}

func (s *Service) GetTaxGroup(ctx context.Context, id uuid.UUID) (*TaxGroup, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *Service) UpdateTaxGroup(ctx context.Context, g *TaxGroup) error {
	if g.Name == "" {
		return fmt.Errorf("tax group name is required")
	}
	if existing, err := s.groups.GetByName(ctx, g.Name); err == nil && existing != nil && existing.ID != g.ID {
		return fmt.Errorf("tax group %q: %w", g.Name, ErrDuplicateName)
	}
	return s.groups.Update(ctx, g)
}

func (s *Service) DeleteTaxGroup(ctx context.Context, id uuid.UUID) error {
	return s.groups.Delete(ctx, id)
}

func (s *Service) SearchTaxGroups(ctx context.Context, params map[string]string, limit, offset int) ([]*TaxGroup, int, error) {
	return s.groups.Search(ctx, params, limit, offset)
}

// =========== FinanceRecord ===========

func (s *Service) CreateFinanceRecord(ctx context.Context, f *FinanceRecord) error {
	if err := validateFinanceRecord(f); err != nil {
		return err
	}
	return s.records.Create(ctx, f)
}

func (s *Service) GetFinanceRecord(ctx context.Context, id uuid.UUID) (*FinanceRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) UpdateFinanceRecord(ctx context.Context, f *FinanceRecord) error {
	if err := validateFinanceRecord(f); err != nil {
		return err
	}
	return s.records.Update(ctx, f)
}

func (s *Service) DeleteFinanceRecord(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) SearchFinanceRecords(ctx context.Context, params map[string]string, limit, offset int) ([]*FinanceRecord, int, error) {
	return s.records.Search(ctx, params, limit, offset)
}

func validateFinanceRecord(f *FinanceRecord) error {
	if !validFinanceKinds[f.Kind] {
		return fmt.Errorf("invalid record kind: %s", f.Kind)
	}
	if f.Category == "" {
		return fmt.Errorf("category is required")
	}
	if f.Amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if f.Date == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}
