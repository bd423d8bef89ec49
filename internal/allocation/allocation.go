// Package allocation previews how the platform will split buying power across
// a generated portfolio: each position gets floor(buyingPower * weight) whole
// dollars, and lines that floor to zero are skipped rather than ordered.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
)

// PlannedOrder is one line of the preview. Notional is a whole-dollar string;
// skipped lines carry a zero notional and the reason.
type PlannedOrder struct {
	Symbol   string `json:"symbol"`
	Notional string `json:"notional"`
	Skipped  bool   `json:"skipped"`
	Reason   string `json:"reason,omitempty"`
}

// Preview computes the per-position notional split for the given buying
// power, mirroring the platform's purchase sizing. Buying power must parse as
// a non-negative decimal amount.
func Preview(buyingPower string, positions []model.Position) ([]PlannedOrder, error) {
	bp, err := decimal.NewFromString(buyingPower)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidBuyingPower, buyingPower)
	}
	if bp.IsNegative() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidBuyingPower, buyingPower)
	}

	orders := make([]PlannedOrder, len(positions))
	for i, pos := range positions {
		notional := bp.Mul(decimal.NewFromFloat(pos.Weight)).Floor()
		if notional.LessThanOrEqual(decimal.Zero) {
			orders[i] = PlannedOrder{
				Symbol:   pos.Symbol,
				Notional: "0",
				Skipped:  true,
				Reason:   "calculated amount is zero or negative",
			}
			continue
		}
		orders[i] = PlannedOrder{Symbol: pos.Symbol, Notional: notional.String()}
	}
	return orders, nil
}

// Total sums the notionals of the lines that will actually be ordered.
func Total(orders []PlannedOrder) string {
	total := decimal.Zero
	for _, o := range orders {
		if o.Skipped {
			continue
		}
		n, err := decimal.NewFromString(o.Notional)
		if err != nil {
			continue
		}
		total = total.Add(n)
	}
	return total.String()
}
