package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopfleet/payouts/internal/money"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, money.Round(2.5, 0))
	assert.Equal(t, 2.0, money.Round(2.4, 0))
	assert.Equal(t, -2.0, money.Round(-2.5, 0))
	assert.Equal(t, -3.0, money.Round(-2.6, 0))
	assert.Equal(t, 2.35, money.Round(2.345, 2))
	assert.Equal(t, 1234.57, money.Round(1234.567, 2))
	assert.Equal(t, 0.0, money.Round(0, 0))
}

func TestFormatWholeUnits(t *testing.T) {
	assert.Equal(t, "₱1,234", money.Format(1234.4))
	assert.Equal(t, "₱1,235", money.Format(1234.5))
	assert.Equal(t, "₱0", money.Format(0))
	assert.Equal(t, "₱-210", money.Format(-210))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "₱1,234.50", money.FormatCents(1234.5))
	assert.Equal(t, "₱210.00", money.FormatCents(210))
	assert.Equal(t, "₱0.99", money.FormatCents(0.994))
}
