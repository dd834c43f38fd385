package commissions

import (
	"context"

	"github.com/google/uuid"
)

type CommissionRepository interface {
	Create(ctx context.Context, c *Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Commission, error)
	Update(ctx context.Context, c *Commission) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Commission, int, error)
}

type CommissionSettingRepository interface {
	Create(ctx context.Context, s *CommissionSetting) error
	GetByID(ctx context.Context, id uuid.UUID) (*CommissionSetting, error)
	GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*CommissionSetting, error)
	Update(ctx context.Context, s *CommissionSetting) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*CommissionSetting, int, error)
}
