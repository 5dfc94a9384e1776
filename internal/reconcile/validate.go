package reconcile

import (
	"fmt"
	"strings"
)

// FieldError pinpoints a single validation failure. Row is the zero-based
// line index for line-scoped failures and -1 otherwise. Row is always
// serialized: omitting it would make a failure on the first line (row 0)
// indistinguishable from a document-scoped one.
type FieldError struct {
	Field  string `json:"field"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s (row %d): %s", e.Field, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError aggregates every failure found by the gate so the caller
// can surface them all at once. It is fully recoverable: the user corrects
// the input and re-validates, no state is lost.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends one field failure. Row is -1 for document-scoped fields.
func (e *ValidationError) Add(field string, row int, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Row: row, Reason: reason})
}

// Validate is the pre-submission gate. It either accepts the document as
// structurally sound or returns a *ValidationError listing every offending
// field and row; it never partially accepts. Out-of-range numeric inputs do
// not reach this point (constructors clamp them); the gate is concerned
// with missing references and structural violations only.
func (d Document) Validate() error {
	verr := &ValidationError{}

	for _, ref := range d.PartyRefs {
		if ref.ID <= 0 {
			verr.Add(ref.Field, -1, "required reference is missing")
		}
	}
	if d.Date.IsZero() {
		verr.Add("date", -1, "date is required")
	}
	if len(d.Lines) == 0 {
		verr.Add("lines", -1, "at least one line item is required")
	}
	for i, li := range d.Lines {
		if li.ProductRef <= 0 {
			verr.Add("lines.product_id", i, "product reference is required")
		}
		if li.Quantity <= 0 {
			verr.Add("lines.quantity", i, "quantity must be greater than zero")
		}
		if li.Discount > li.Quantity*li.UnitPrice {
			verr.Add("lines.discount", i, "discount exceeds quantity * price")
		}
	}
	if d.PaidAmount < 0 {
		verr.Add("paid", -1, "paid amount cannot be negative")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
