package forms

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validFormStatuses = map[string]bool{
	"draft":    true,
	"active":   true,
	"archived": true,
}

var validFieldKinds = map[string]bool{
	"text":     true,
	"number":   true,
	"date":     true,
	"select":   true,
	"checkbox": true,
	"textarea": true,
}

type Service struct {
	forms FormRepository
}

func NewService(forms FormRepository) *Service {
	return &Service{forms: forms}
}

func (s *Service) CreateForm(ctx context.Context, f *Form) error {
	if f.Status == "" {
		f.Status = "draft"
	}
	if err := validateForm(f); err != nil {
		return err
	}
	return s.forms.Create(ctx, f)
}

func (s *Service) GetForm(ctx context.Context, id uuid.UUID) (*Form, error) {
	return s.forms.GetByID(ctx, id)
}

func (s *Service) UpdateForm(ctx context.Context, f *Form) error {
	if err := validateForm(f); err != nil {
		return err
	}
	return s.forms.Update(ctx, f)
}

func (s *Service) DeleteForm(ctx context.Context, id uuid.UUID) error {
	return s.forms.Delete(ctx, id)
}

func (s *Service) SearchForms(ctx context.Context, params map[string]string, limit, offset int) ([]*Form, int, error) {
	return s.forms.Search(ctx, params, limit, offset)
}

func validateForm(f *Form) error {
	if f.Name == "" {
		return fmt.Errorf("form name is required")
	}
	if !validFormStatuses[f.Status] {
		return fmt.Errorf("invalid form status: %s", f.Status)
	}
	for i, fld := range f.Fields {
		if fld.Label == "" {
			return fmt.Errorf("field %d: label is required", i)
		}
		if !validFieldKinds[fld.Kind] {
			return fmt.Errorf("field %d: invalid kind: %s", i, fld.Kind)
		}
		if fld.Kind == "select" && len(fld.Options) == 0 {
			return fmt.Errorf("field %d: select fields need at least one option", i)
		}
	}
	return nil
}
