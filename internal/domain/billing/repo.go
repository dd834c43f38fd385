package billing

import (
	"context"

	"github.com/google/uuid"
)

type TaxRepository interface {
	Create(ctx context.Context, t *Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tax, error)
	GetByName(ctx context.Context, name string) (*Tax, error)
	Update(ctx context.Context, t *Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Tax, int, error)
}

type TaxGroupRepository interface {
	Create(ctx context.Context, g *TaxGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*TaxGroup, error)
	GetByName(ctx context.Context, name string) (*TaxGroup, error)
	Update(ctx context.Context, g *TaxGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*TaxGroup, int, error)
}

type FinanceRecordRepository interface {
	Create(ctx context.Context, f *FinanceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*FinanceRecord, error)
	Update(ctx context.Context, f *FinanceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*FinanceRecord, int, error)
}
