package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary holds the figures shown for one income.
type Summary struct {
	Income float64
	Tax    float64

	// EffectiveRatePercent is tax/income*100 rounded half away from zero to
	// 2 decimals; 0 when income is 0.
	EffectiveRatePercent float64
	NetIncome            float64

	// Bracket is the marginal bracket index (see MarginalIndex).
	Bracket int
}

// Summarize computes tax and the derived metrics for income.
func Summarize(income float64, brackets Table) Summary {
	tax := ComputeTax(income, brackets)
	s := Summary{
		Income:  income,
		Tax:     tax,
		Bracket: MarginalIndex(income, brackets),
	}
	if !(income > 0) || math.IsInf(income, 1) {
		return s
	}

	inc := decimal.NewFromFloat(income)
	t := decimal.NewFromFloat(tax)
	s.NetIncome = inc.Sub(t).InexactFloat64()
	s.EffectiveRatePercent = t.Div(inc).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	return s
}
