package domain_test

import (
	"testing"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDebtStatusFor(t *testing.T) {
	original := decimal.NewFromInt(400)

	testCases := []struct {
		name      string
		remaining decimal.Decimal
		expected  domain.DebtStatus
	}{
		{
			name:      "Untouched debt is active",
			remaining: decimal.NewFromInt(400),
			expected:  domain.DebtActive,
		},
		{
			name:      "Partially paid debt is partial",
			remaining: decimal.NewFromInt(150),
			expected:  domain.DebtPartial,
		},
		{
			name:      "Fully paid debt is paid",
			remaining: decimal.Zero,
			expected:  domain.DebtPaid,
		},
		{
			name:      "Smallest positive remainder is still partial",
			remaining: decimal.NewFromFloat(0.01),
			expected:  domain.DebtPartial,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.DebtStatusFor(tc.remaining, original))
		})
	}
}

func TestTransactionRemainder(t *testing.T) {
	txn := domain.Transaction{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(600),
	}
	assert.True(t, txn.Remainder().Equal(decimal.NewFromInt(400)))

	fullyPaid := domain.Transaction{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(1000),
	}
	assert.True(t, fullyPaid.Remainder().IsZero())
}
