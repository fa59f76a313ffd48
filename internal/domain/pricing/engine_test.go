// internal/domain/pricing/engine_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cents(v int64) *int64 { return &v }

func TestBestOf_TierBeatsProductDiscount(t *testing.T) {
	// Base 1000, product path 900, 15% tier path 850: tier wins.
	lines := []LineItem{
		{BaseUnitPrice: 1000, DiscountedUnitPrice: cents(900), Quantity: 1},
	}

	quote := BestOf(lines, 15)

	assert.Equal(t, AppliedTier, quote.Applied)
	assert.Equal(t, int64(1000), quote.BaseSubtotal)
	assert.Equal(t, int64(900), quote.ProductPathTotal)
	assert.Equal(t, int64(850), quote.TierPathTotal)
	assert.Equal(t, int64(850), quote.ChosenTotal)
	assert.Equal(t, int64(50), quote.SavingsAmount)
	assert.InDelta(t, 5.56, quote.SavingsPercentOfProduct, 0.01)
}

func TestBestOf_ProductBeatsTier(t *testing.T) {
	// Product path 700 beats a 10% tier path of 900.
	lines := []LineItem{
		{BaseUnitPrice: 1000, DiscountedUnitPrice: cents(700), Quantity: 1},
	}

	quote := BestOf(lines, 10)

	assert.Equal(t, AppliedProduct, quote.Applied)
	assert.Equal(t, int64(700), quote.ChosenTotal)
	assert.Equal(t, int64(900), quote.TierPathTotal)
	assert.Zero(t, quote.SavingsAmount)
}

func TestBestOf_NoDiscountAvailable(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 500, Quantity: 2},
		{BaseUnitPrice: 300, Quantity: 1},
	}

	quote := BestOf(lines, 0)

	assert.Equal(t, AppliedNone, quote.Applied)
	assert.Equal(t, int64(1300), quote.BaseSubtotal)
	assert.Equal(t, int64(1300), quote.ChosenTotal)
	assert.Zero(t, quote.SavingsAmount)
	assert.Zero(t, quote.SavingsPercentOfProduct)
}

func TestBestOf_TierRequiresStrictImprovement(t *testing.T) {
	// Tie between tier and product paths: tier is not applied on equality.
	lines := []LineItem{
		{BaseUnitPrice: 1000, DiscountedUnitPrice: cents(900), Quantity: 1},
	}

	quote := BestOf(lines, 10)

	assert.Equal(t, AppliedProduct, quote.Applied)
	assert.Equal(t, int64(900), quote.ChosenTotal)
}

func TestBestOf_MixedLinesSumPerPath(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 2400, DiscountedUnitPrice: cents(2150), Quantity: 2},
		{BaseUnitPrice: 189, Quantity: 10},
	}

	quote := BestOf(lines, 5)

	assert.Equal(t, int64(6690), quote.BaseSubtotal)
	assert.Equal(t, int64(6190), quote.ProductPathTotal)
	// 5% of 6690 = 334 (truncated), tier path 6356 > product path.
	assert.Equal(t, int64(6356), quote.TierPathTotal)
	assert.Equal(t, AppliedProduct, quote.Applied)
	assert.Equal(t, int64(6190), quote.ChosenTotal)
}

func TestBestOf_IgnoresNonPositiveQuantities(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 1000, Quantity: 0},
		{BaseUnitPrice: 1000, Quantity: -3},
		{BaseUnitPrice: 500, Quantity: 1},
	}

	quote := BestOf(lines, 0)

	assert.Equal(t, int64(500), quote.BaseSubtotal)
	assert.Equal(t, int64(500), quote.ChosenTotal)
}

func TestBestOf_NegativeDiscountPriceTreatedAbsent(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 1000, DiscountedUnitPrice: cents(-1), Quantity: 1},
	}

	quote := BestOf(lines, 0)

	assert.Equal(t, AppliedNone, quote.Applied)
	assert.Equal(t, int64(1000), quote.ProductPathTotal)
}

func TestBestOf_NegativeTierPercentClamped(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 1000, Quantity: 1},
	}

	quote := BestOf(lines, -20)

	assert.Equal(t, AppliedNone, quote.Applied)
	assert.Zero(t, quote.TierPercent)
	assert.Equal(t, int64(1000), quote.TierPathTotal)
}

func TestBestOf_FullTierDiscount(t *testing.T) {
	lines := []LineItem{
		{BaseUnitPrice: 1000, Quantity: 1},
	}

	quote := BestOf(lines, 100)

	assert.Equal(t, AppliedTier, quote.Applied)
	assert.Zero(t, quote.ChosenTotal)
	assert.Equal(t, int64(1000), quote.SavingsAmount)
}

func TestBestOf_EmptyLines(t *testing.T) {
	quote := BestOf(nil, 15)

	assert.Equal(t, AppliedNone, quote.Applied)
	assert.Zero(t, quote.BaseSubtotal)
	assert.Zero(t, quote.ChosenTotal)
}
