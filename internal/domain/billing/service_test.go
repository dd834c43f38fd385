package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockTaxRepo struct {
	taxes map[uuid.UUID]*Tax
}

func newMockTaxRepo() *mockTaxRepo {
	return &mockTaxRepo{taxes: make(map[uuid.UUID]*Tax)}
}

func (m *mockTaxRepo) Create(_ context.Context, t *Tax) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	m.taxes[t.ID] = t
	return nil
}

func (m *mockTaxRepo) GetByID(_ context.Context, id uuid.UUID) (*Tax, error) {
	t, ok := m.taxes[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return t, nil
}

func (m *mockTaxRepo) GetByName(_ context.Context, name string) (*Tax, error) {
	for _, t := range m.taxes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockTaxRepo) Update(_ context.Context, t *Tax) error {
	if _, ok := m.taxes[t.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.taxes[t.ID] = t
	return nil
}

func (m *mockTaxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.taxes, id)
	return nil
}

func (m *mockTaxRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*Tax, int, error) {
	var result []*Tax
	for _, t := range m.taxes {
		result = append(result, t)
	}
	return page(result, limit, offset)
}

type mockTaxGroupRepo struct {
	groups map[uuid.UUID]*TaxGroup
}

func newMockTaxGroupRepo() *mockTaxGroupRepo {
	return &mockTaxGroupRepo{groups: make(map[uuid.UUID]*TaxGroup)}
}

func (m *mockTaxGroupRepo) Create(_ context.Context, g *TaxGroup) error {
	g.ID = uuid.New()
	g.CreatedAt = time.Now()
	g.UpdatedAt = time.Now()
	m.groups[g.ID] = g
	return nil
}

func (m *mockTaxGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*TaxGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return g, nil
}

func (m *mockTaxGroupRepo) GetByName(_ context.Context, name string) (*TaxGroup, error) {
	for _, g := range m.groups {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockTaxGroupRepo) Update(_ context.Context, g *TaxGroup) error {
	if _, ok := m.groups[g.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.groups[g.ID] = g
	return nil
}

func (m *mockTaxGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.groups, id)
	return nil
}

func (m *mockTaxGroupRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*TaxGroup, int, error) {
	var result []*TaxGroup
	for _, g := range m.groups {
		result = append(result, g)
	}
	return page(result, limit, offset)
}

type mockFinanceRecordRepo struct {
	records map[uuid.UUID]*FinanceRecord
}

func newMockFinanceRecordRepo() *mockFinanceRecordRepo {
	return &mockFinanceRecordRepo{records: make(map[uuid.UUID]*FinanceRecord)}
}

func (m *mockFinanceRecordRepo) Create(_ context.Context, f *FinanceRecord) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	f.UpdatedAt = time.Now()
	m.records[f.ID] = f
	return nil
}

func (m *mockFinanceRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*FinanceRecord, error) {
	f, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return f, nil
}

func (m *mockFinanceRecordRepo) Update(_ context.Context, f *FinanceRecord) error {
	if _, ok := m.records[f.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.records[f.ID] = f
	return nil
}

func (m *mockFinanceRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockFinanceRecordRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*FinanceRecord, int, error) {
	var result []*FinanceRecord
	for _, f := range m.records {
		result = append(result, f)
	}
	return page(result, limit, offset)
}

func page[T any](result []T, limit, offset int) ([]T, int, error) {
	total := len(result)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return result[offset:end], total, nil
}

func newTestService() (*Service, *mockTaxRepo, *mockTaxGroupRepo, *mockFinanceRecordRepo) {
	taxes := newMockTaxRepo()
	groups := newMockTaxGroupRepo()
	records := newMockFinanceRecordRepo()
	return NewService(taxes, groups, records), taxes, groups, records
}

// -- Tax --

func TestCreateTax(t *testing.T) {
	svc, _, _, _ := newTestService()

	tax := &Tax{Name: "GST", Rate: 18}
	if err := svc.CreateTax(context.Background(), tax); err != nil {
		t.Fatalf("CreateTax: %v", err)
	}
	if tax.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateTax_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name string
		tax  *Tax
	}{
		{"missing name", &Tax{Rate: 10}},
		{"negative rate", &Tax{Name: "VAT", Rate: -1}},
		{"rate over 100", &Tax{Name: "VAT", Rate: 101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateTax(context.Background(), tc.tax); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateTax_DuplicateName(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateTax(context.Background(), &Tax{Name: "gst", Rate: 18}); err != nil {
		t.Fatalf("CreateTax: %v", err)
	}
	err := svc.CreateTax(context.Background(), &Tax{Name: "GST", Rate: 12})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestUpdateTax_RenameToSelf(t *testing.T) {
	svc, _, _, _ := newTestService()

	tax := &Tax{Name: "GST", Rate: 18}
	if err := svc.CreateTax(context.Background(), tax); err != nil {
		t.Fatalf("CreateTax: %v", err)
	}
	tax.Name = "gst"
	tax.Rate = 12
	if err := svc.UpdateTax(context.Background(), tax); err != nil {
		t.Fatalf("renaming a tax to its own name should not conflict: %v", err)
	}
}

func TestUpdateTax_RenameCollision(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateTax(context.Background(), &Tax{Name: "GST", Rate: 18}); err != nil {
		t.Fatalf("CreateTax: %v", err)
	}
	vat := &Tax{Name: "VAT", Rate: 5}
	if err := svc.CreateTax(context.Background(), vat); err != nil {
		t.Fatalf("CreateTax: %v", err)
	}
	vat.Name = "Gst"
	err := svc.UpdateTax(context.Background(), vat)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

// -- TaxGroup --

func TestCreateTaxGroup(t *testing.T) {
	svc, _, _, _ := newTestService()

	g := &TaxGroup{Name: "Standard", TaxIDs: []string{uuid.NewString(), uuid.NewString()}}
	if err := svc.CreateTaxGroup(context.Background(), g); err != nil {
		t.Fatalf("CreateTaxGroup: %v", err)
	}
	if len(g.TaxIDs) != 2 {
		t.Errorf("expected 2 tax ids, got %d", len(g.TaxIDs))
	}
}

func TestCreateTaxGroup_DuplicateName(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateTaxGroup(context.Background(), &TaxGroup{Name: "standard"}); err != nil {
		t.Fatalf("CreateTaxGroup: %v", err)
	}
	err := svc.CreateTaxGroup(context.Background(), &TaxGroup{Name: "Standard"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateTaxGroup_MissingName(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateTaxGroup(context.Background(), &TaxGroup{}); err == nil {
		t.Error("expected validation error")
	}
}

// -- FinanceRecord --

func TestCreateFinanceRecord(t *testing.T) {
	svc, _, _, records := newTestService()

	f := &FinanceRecord{Kind: "income", Category: "consultation", Amount: 250, Date: "2025-03-10"}
	if err := svc.CreateFinanceRecord(context.Background(), f); err != nil {
		t.Fatalf("CreateFinanceRecord: %v", err)
	}
	if len(records.records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records.records))
	}
}

func TestCreateFinanceRecord_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name string
		rec  *FinanceRecord
	}{
		{"invalid kind", &FinanceRecord{Kind: "transfer", Category: "misc", Amount: 10, Date: "2025-03-10"}},
		{"missing category", &FinanceRecord{Kind: "expense", Amount: 10, Date: "2025-03-10"}},
		{"negative amount", &FinanceRecord{Kind: "expense", Category: "rent", Amount: -5, Date: "2025-03-10"}},
		{"missing date", &FinanceRecord{Kind: "income", Category: "lab", Amount: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateFinanceRecord(context.Background(), tc.rec); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSearchFinanceRecords(t *testing.T) {
	svc, _, _, _ := newTestService()

	for i := 0; i < 3; i++ {
		f := &FinanceRecord{Kind: "expense", Category: "supplies", Amount: float64(i * 10), Date: "2025-03-10"}
		if err := svc.CreateFinanceRecord(context.Background(), f); err != nil {
			t.Fatalf("CreateFinanceRecord: %v", err)
		}
	}
	items, total, err := svc.SearchFinanceRecords(context.Background(), nil, 2, 0)
	if err != nil {
		t.Fatalf("SearchFinanceRecords: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}
