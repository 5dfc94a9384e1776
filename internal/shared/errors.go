// Package shared holds helpers used across document modules: pagination,
// currency formatting, the submit lock and error plumbing.
package shared

import (
	"errors"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
)

// ErrReferenceMismatch indicates a client-known reference is stale or
// points at the wrong parent; the user must re-select.
var ErrReferenceMismatch = errors.New("referenced entry does not belong to its parent")

// UserSafeMessage returns a message suitable for end users. Validation
// failures pass through verbatim, everything else is flattened so internal
// details stay out of responses.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *reconcile.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	switch {
	case errors.Is(err, httpx.ErrNotFound):
		return "The requested record was not found."
	case errors.Is(err, ErrReferenceMismatch):
		return "The selected entry no longer matches. Please re-select and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
