// internal/domain/pricing/engine.go
package pricing

// LineItem is one priced line fed into the discount computation. Prices are
// in cents. DiscountedUnitPrice is the optional per-product discounted price;
// nil or negative means the item carries no product discount.
type LineItem struct {
	BaseUnitPrice       int64
	DiscountedUnitPrice *int64
	Quantity            int
}

// AppliedPath tags which discount source won
type AppliedPath string

const (
	AppliedTier    AppliedPath = "tier"
	AppliedProduct AppliedPath = "product"
	AppliedNone    AppliedPath = "none"
)

// Quote is the result of the best-of computation. The two discount sources
// are never combined: the order gets either the customer-tier percentage or
// the per-product discounts, whichever total is lower.
type Quote struct {
	Applied                 AppliedPath `json:"applied"`
	BaseSubtotal            int64       `json:"base_subtotal"`
	ProductPathTotal        int64       `json:"product_path_total"`
	TierPathTotal           int64       `json:"tier_path_total"`
	TierPercent             float64     `json:"tier_percent"`
	ChosenTotal             int64       `json:"chosen_total"`
	SavingsAmount           int64       `json:"savings_amount"`
	SavingsPercentOfProduct float64     `json:"savings_percent_of_product"`
}

// BestOf computes the best available discount for a set of lines given the
// customer's tier percentage. Pure function, no I/O.
func BestOf(lines []LineItem, tierPercent float64) Quote {
	if tierPercent < 0 {
		tierPercent = 0
	}

	var baseSubtotal, productPathTotal int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		qty := int64(line.Quantity)
		baseSubtotal += line.BaseUnitPrice * qty

		unit := line.BaseUnitPrice
		if line.DiscountedUnitPrice != nil && *line.DiscountedUnitPrice >= 0 {
			unit = *line.DiscountedUnitPrice
		}
		productPathTotal += unit * qty
	}

	tierDiscount := int64(float64(baseSubtotal) * tierPercent / 100)
	tierPathTotal := baseSubtotal - tierDiscount
	if tierPathTotal < 0 {
		tierPathTotal = 0
	}

	quote := Quote{
		BaseSubtotal:     baseSubtotal,
		ProductPathTotal: productPathTotal,
		TierPathTotal:    tierPathTotal,
		TierPercent:      tierPercent,
	}

	switch {
	case tierPercent > 0 && tierPathTotal < productPathTotal:
		quote.Applied = AppliedTier
		quote.ChosenTotal = tierPathTotal
	case productPathTotal < baseSubtotal:
		quote.Applied = AppliedProduct
		quote.ChosenTotal = productPathTotal
	default:
		quote.Applied = AppliedNone
		quote.ChosenTotal = productPathTotal
	}

	if savings := quote.ProductPathTotal - quote.ChosenTotal; savings > 0 {
		quote.SavingsAmount = savings
		if quote.ProductPathTotal > 0 {
			quote.SavingsPercentOfProduct = float64(savings) / float64(quote.ProductPathTotal) * 100
		}
	}

	return quote
}
