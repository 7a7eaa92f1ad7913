package payroll

import "github.com/shopspring/decimal"

// DeductionBreakdown holds the transaction-derived deduction figures for a
// month, including the balance carried in from the previous month.
type DeductionBreakdown struct {
	TotalDeductions decimal.Decimal
	AdvanceAmount   decimal.Decimal
	OtherDeductions decimal.Decimal
}

// CalculateDeductions totals the deductions for a month's transactions.
//
// ADVANCE amounts and DEDUCTION/OTHER amounts are tracked in separate
// buckets; SALARY transactions are payout records and excluded entirely.
// previousCarryForward is the unpaid remainder of the immediately preceding
// month (zero when that month has no snapshot) and is injected by the
// caller, never recomputed here.
func CalculateDeductions(transactions []*Transaction, previousCarryForward decimal.Decimal) DeductionBreakdown {
	advance := decimal.Zero
	other := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case TransactionTypeAdvance:
			advance = advance.Add(tx.Amount)
		case TransactionTypeDeduction, TransactionTypeOther:
			other = other.Add(tx.Amount)
		}
	}

	return DeductionBreakdown{
		TotalDeductions: advance.Add(other).Add(previousCarryForward),
		AdvanceAmount:   advance,
		OtherDeductions: other,
	}
}
