package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsSumsLineTotals(t *testing.T) {
	lines := []LineItem{
		NewLineItem(1, 3, 100000, 10000),
		NewLineItem(2, 3, 100000, 10000),
	}
	totals := ComputeTotals(lines, 600000)

	require.Equal(t, int64(643800), totals.Total)
	require.Equal(t, int64(43800), totals.Due)
	assert.False(t, totals.Settled)
	assert.Equal(t, SettlementOutstanding, SettlementOf(totals.Due))
}

func TestComputeTotalsExactPaymentIsSettled(t *testing.T) {
	lines := []LineItem{NewLineItem(1, 3, 100000, 10000)}
	total := ComputeTotals(lines, 0).Total

	totals := ComputeTotals(lines, total)
	require.Equal(t, int64(0), totals.Due)
	assert.True(t, totals.Settled)
	assert.Equal(t, SettlementSettled, SettlementOf(totals.Due))
}

func TestComputeTotalsOverpaymentGoesNegative(t *testing.T) {
	lines := []LineItem{NewLineItem(1, 1, 1000, 0)}
	totals := ComputeTotals(lines, 5000)

	require.Equal(t, int64(1110), totals.Total)
	assert.Equal(t, int64(-3890), totals.Due)
	assert.True(t, totals.Settled)
}

func TestComputeTotalsEmptyList(t *testing.T) {
	totals := ComputeTotals(nil, 0)
	assert.Equal(t, int64(0), totals.Total)
	assert.True(t, totals.Settled)
}

func TestComputeTotalsDoesNotMutateInput(t *testing.T) {
	lines := []LineItem{NewLineItem(1, 2, 500, 0)}
	before := lines[0]
	_ = ComputeTotals(lines, 100)
	assert.Equal(t, before, lines[0])
}
