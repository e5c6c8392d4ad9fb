package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier identifies which discount rule applied.
type Tier string

const (
	// TierStandard applies to totals up to and including the threshold.
	TierStandard Tier = "standard"
	// TierLarge applies to totals strictly above the threshold.
	TierLarge Tier = "large"
)

const noDiscountMessage = "No discount applied"

var (
	discountThreshold = decimal.NewFromInt(10000)
	largeRate         = decimal.RequireFromString("0.10")
	standardRate      = decimal.RequireFromString("0.05")
)

// Discount holds the outcome of the tiered discount policy.
type Discount struct {
	Tier   Tier
	Rate   decimal.Decimal
	Amount decimal.Decimal
	Reason string
}

// CalculateDiscount applies the two-tier policy to total: 10% above 10000,
// 5% otherwise. The amount is not rounded; Message rounds for display.
func CalculateDiscount(total decimal.Decimal) Discount {
	if total.GreaterThan(discountThreshold) {
		return Discount{
			Tier:   TierLarge,
			Rate:   largeRate,
			Amount: total.Mul(largeRate),
			Reason: "10% discount for orders over 10000",
		}
	}
	return Discount{
		Tier:   TierStandard,
		Rate:   standardRate,
		Amount: total.Mul(standardRate),
		Reason: "5% discount for orders under 10000",
	}
}

// Message formats the discount for display as
// "<reason>. Discount amount: <amount>". Negative amounts, which only
// arise from negative totals, report that no discount was applied.
func (d Discount) Message() string {
	if d.Amount.IsNegative() {
		return noDiscountMessage
	}
	return fmt.Sprintf("%s. Discount amount: %s", d.Reason, d.Amount.StringFixed(2))
}
