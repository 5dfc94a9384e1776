package reconcile

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() Document {
	return Document{
		PartyRefs: []PartyRef{
			{Field: "supplier_id", ID: 1},
			{Field: "shop_id", ID: 2},
			{Field: "user_id", ID: 3},
		},
		Date:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines: []LineItem{NewLineItem(10, 2, 5000, 0)},
	}
}

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestValidateAcceptsCompleteDocument(t *testing.T) {
	require.NoError(t, validDocument().Validate())
}

func TestValidateRejectsMissingPartyRef(t *testing.T) {
	doc := validDocument()
	doc.PartyRefs[0].ID = 0

	fields := fieldErrors(t, doc.Validate())
	require.Len(t, fields, 1)
	assert.Equal(t, "supplier_id", fields[0].Field)
}

func TestValidateRejectsEmptyLineList(t *testing.T) {
	doc := validDocument()
	doc.Lines = nil

	fields := fieldErrors(t, doc.Validate())
	require.Len(t, fields, 1)
	assert.Equal(t, "lines", fields[0].Field)
}

func TestValidateFlagsZeroQuantityRow(t *testing.T) {
	doc := validDocument()
	doc.Lines = append(doc.Lines, NewLineItem(11, 0, 1000, 0))

	fields := fieldErrors(t, doc.Validate())
	require.Len(t, fields, 1)
	assert.Equal(t, "lines.quantity", fields[0].Field)
	assert.Equal(t, 1, fields[0].Row)
}

func TestValidateRejectsOversizedDiscountWithRowIndex(t *testing.T) {
	doc := validDocument()
	doc.Lines = append(doc.Lines, LineItem{ProductRef: 11, Quantity: 2, UnitPrice: 100, Discount: 300})

	fields := fieldErrors(t, doc.Validate())
	require.Len(t, fields, 1)
	assert.Equal(t, "lines.discount", fields[0].Field)
	assert.Equal(t, 1, fields[0].Row)
}

func TestFieldErrorRowZeroSurvivesSerialization(t *testing.T) {
	doc := validDocument()
	doc.Lines[0].Discount = 100000
	doc.PartyRefs[0].ID = 0

	fields := fieldErrors(t, doc.Validate())
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	// A first-line failure keeps its row index on the wire; document-scoped
	// failures keep their -1.
	assert.Contains(t, string(data), `"row":0`)
	assert.Contains(t, string(data), `"row":-1`)
}

func TestValidateRejectsMissingDate(t *testing.T) {
	doc := validDocument()
	doc.Date = time.Time{}

	fields := fieldErrors(t, doc.Validate())
	require.Len(t, fields, 1)
	assert.Equal(t, "date", fields[0].Field)
}

func TestValidateCollectsAllFailures(t *testing.T) {
	doc := Document{PartyRefs: []PartyRef{{Field: "supplier_id"}}}
	fields := fieldErrors(t, doc.Validate())
	// supplier ref, date and empty line list all at once.
	assert.Len(t, fields, 3)
}

func TestPruneEmptyLines(t *testing.T) {
	lines := []LineItem{
		NewLineItem(1, 2, 100, 0),
		NewLineItem(2, 0, 0, 0),
		NewLineItem(3, 1, 50, 0),
	}
	kept := PruneEmptyLines(lines)
	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].ProductRef)
	assert.Equal(t, int64(3), kept[1].ProductRef)
}

func TestNormalizeProducesNewValue(t *testing.T) {
	doc := validDocument()
	doc.Lines[0].Quantity = 5
	doc.PaidAmount = -100

	norm := doc.Normalize()
	assert.Equal(t, int64(0), norm.PaidAmount)
	assert.Equal(t, Recompute(doc.Lines[0]), norm.Lines[0])
	// The original value is untouched.
	assert.Equal(t, int64(-100), doc.PaidAmount)
}
