package suppliers

import (
	"fmt"
	"strings"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
)

func (s *Service) validate(sup Supplier) error {
	if sup.Code == "" {
		return fmt.Errorf("%w: supplier code is required", httpx.ErrValidation)
	}
	if sup.Name == "" {
		return fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}
	if sup.Phone != "" && !validPhone(sup.Phone) {
		return fmt.Errorf("%w: supplier phone may only contain digits, spaces, parentheses, + and -", httpx.ErrValidation)
	}
	return nil
}

// validPhone accepts the loose formats seen on cooperative member data:
// "+62 812-3456-7890", "(021) 555 0199" and plain digit runs.
func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 5
}

// normalize trims the caller-typed fields before validation so " pt maju "
// and "PT MAJU" resolve to the same code on the unique index.
func normalize(sup Supplier) Supplier {
	sup.Code = strings.ToUpper(strings.TrimSpace(sup.Code))
	sup.Name = strings.TrimSpace(sup.Name)
	sup.Address = strings.TrimSpace(sup.Address)
	sup.Phone = strings.TrimSpace(sup.Phone)
	return sup
}
