package costing_test

import (
	"testing"

	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/costing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUnitCost(t *testing.T) {
	cost, err := costing.UnitCost(dec("50"), dec("10"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("5")), "expected 5, got %s", cost)
}

func TestUnitCostZeroQuantity(t *testing.T) {
	_, err := costing.UnitCost(dec("50"), decimal.Zero)
	assert.Error(t, err)
}

func TestUnitCostNegativeCost(t *testing.T) {
	_, err := costing.UnitCost(dec("-1"), dec("10"))
	assert.Error(t, err)
}

func TestWeightedAverageCost(t *testing.T) {
	// 10 units at 5/unit already held, buy 10 more for 70 total (7/unit):
	// (10*5 + 70) / 20 = 6
	cost, err := costing.WeightedAverageCost(dec("10"), dec("5"), dec("10"), dec("70"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("6")), "expected 6, got %s", cost)
}

func TestWeightedAverageCostEmptyItem(t *testing.T) {
	// First purchase into an empty item degenerates to the plain unit cost.
	cost, err := costing.WeightedAverageCost(decimal.Zero, decimal.Zero, dec("10"), dec("50"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("5")), "expected 5, got %s", cost)
}

func TestWeightedAverageCostRepeatedPurchasesStayExact(t *testing.T) {
	// Repeated averaging with decimals must not drift: three purchases of
	// equal quantity at 3, 6 and 9 average to 6 exactly.
	qty := dec("10")
	cost, err := costing.WeightedAverageCost(decimal.Zero, decimal.Zero, qty, dec("30"))
	require.NoError(t, err)

	cost, err = costing.WeightedAverageCost(qty, cost, qty, dec("60"))
	require.NoError(t, err)

	cost, err = costing.WeightedAverageCost(dec("20"), cost, qty, dec("90"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("6")), "expected 6, got %s", cost)
}

func TestWeightedAverageCostRejectsNonPositiveIncoming(t *testing.T) {
	_, err := costing.WeightedAverageCost(dec("10"), dec("5"), decimal.Zero, dec("10"))
	assert.Error(t, err)
}
