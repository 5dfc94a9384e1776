package products

import (
	"fmt"
	"strings"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("%w: product code is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", httpx.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative", httpx.ErrValidation)
	}
	return nil
}
