package commissions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validCommissionStatuses = map[string]bool{
	"pending":   true,
	"approved":  true,
	"paid":      true,
	"cancelled": true,
}

var validSettingKinds = map[string]bool{
	"percentage": true,
	"fixed":      true,
}

type Service struct {
	commissions CommissionRepository
	settings    CommissionSettingRepository
}

func NewService(commissions CommissionRepository, settings CommissionSettingRepository) *Service {
	return &Service{commissions: commissions, settings: settings}
}

// =========== Commission ===========

func (s *Service) CreateCommission(ctx context.Context, c *Commission) error {
	if c.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor is required")
	}
	if c.Amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if c.Status == "" {
		c.Status = "pending"
	}
	if !validCommissionStatuses[c.Status] {
		return fmt.Errorf("invalid commission status: %s", c.Status)
	}
	return s.commissions.Create(ctx, c)
}

func (s *Service) GetCommission(ctx context.Context, id uuid.UUID) (*Commission, error) {
	return s.commissions.GetByID(ctx, id)
}

func (s *Service) UpdateCommission(ctx context.Context, c *Commission) error {
	if c.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor is required")
	}
	if c.Amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if !validCommissionStatuses[c.Status] {
		return fmt.Errorf("invalid commission status: %s", c.Status)
	}
	return s.commissions.Update(ctx, c)
}

func (s *Service) SetCommissionStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validCommissionStatuses[status] {
		return fmt.Errorf("invalid commission status: %s", status)
	}
	return s.commissions.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteCommission(ctx context.Context, id uuid.UUID) error {
	return s.commissions.Delete(ctx, id)
}

func (s *Service) SearchCommissions(ctx context.Context, params map[string]string, limit, offset int) ([]*Commission, int, error) {
	return s.commissions.Search(ctx, params, limit, offset)
}

// =========== CommissionSetting ===========

func (s *Service) CreateCommissionSetting(ctx context.Context, cs *CommissionSetting) error {
	if err := validateSetting(cs); err != nil {
		return err
	}
	return s.settings.Create(ctx, cs)
}

func (s *Service) GetCommissionSetting(ctx context.Context, id uuid.UUID) (*CommissionSetting, error) {
	return s.settings.GetByID(ctx, id)
}

func (s *Service) UpdateCommissionSetting(ctx context.Context, cs *CommissionSetting) error {
	if err := validateSetting(cs); err != nil {
		return err
	}
	return s.settings.Update(ctx, cs)
}

func (s *Service) DeleteCommissionSetting(ctx context.Context, id uuid.UUID) error {
	return s.settings.Delete(ctx, id)
}

func (s *Service) SearchCommissionSettings(ctx context.Context, params map[string]string, limit, offset int) ([]*CommissionSetting, int, error) {
	return s.settings.Search(ctx, params, limit, offset)
}

func validateSetting(cs *CommissionSetting) error {
	if cs.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor is required")
	}
	if cs.Kind == "" {
		cs.Kind = "percentage"
	}
	if !validSettingKinds[cs.Kind] {
		return fmt.Errorf("invalid setting kind: %s", cs.Kind)
	}
	if cs.Kind == "percentage" && (cs.Rate < 0 || cs.Rate > 100) {
		return fmt.Errorf("percentage rate must be between 0 and 100")
	}
	if cs.Kind == "fixed" && cs.Rate < 0 {
		return fmt.Errorf("fixed rate cannot be negative")
	}
	return nil
}
