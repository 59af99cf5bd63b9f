package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// costScale is the number of decimal places kept for per-unit costs. Rounding
// to presentation precision happens at the edges, never here.
const costScale = 8

// UnitCost returns the per-unit cost of a purchase.
func UnitCost(totalCost, quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("quantity must be positive, got %s", quantity.String())
	}
	if totalCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("total cost must not be negative, got %s", totalCost.String())
	}
	return totalCost.DivRound(quantity, costScale), nil
}

// WeightedAverageCost re-estimates the per-unit cost of an inventory item
// after a purchase, proportional to existing and incoming value:
//
//	(existingQty*existingCost + incomingTotalCost) / (existingQty + incomingQty)
func WeightedAverageCost(existingQty, existingCost, incomingQty, incomingTotalCost decimal.Decimal) (decimal.Decimal, error) {
	if incomingQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("incoming quantity must be positive, got %s", incomingQty.String())
	}
	if existingQty.IsNegative() || existingCost.IsNegative() || incomingTotalCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative value in weighted average inputs")
	}

	totalQty := existingQty.Add(incomingQty)
	totalValue := existingQty.Mul(existingCost).Add(incomingTotalCost)
	return totalValue.DivRound(totalQty, costScale), nil
}
