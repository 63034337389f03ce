package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// BracketShare is the part of an income that falls into one bracket.
type BracketShare struct {
	Bracket TaxBracket
	Taxable float64
	Tax     float64
}

// ComputeTax returns the progressive tax owed on income.
//
// Brackets must be sorted ascending and satisfy Table.Validate. Each bracket taxes
// min(income, Upper) - Lower at its rate; iteration stops at the first bracket whose
// Upper is not exceeded. A negative or non-finite income yields 0.
func ComputeTax(income float64, brackets Table) float64 {
	tax := decimal.Zero
	walkBrackets(income, brackets, func(_ int, b TaxBracket, taxable decimal.Decimal) {
		tax = tax.Add(decimal.NewFromFloat(b.Rate).Mul(taxable))
	})
	return tax.InexactFloat64()
}

// Breakdown returns one share per bracket, in table order. Brackets above the
// income get a zero share.
func Breakdown(income float64, brackets Table) []BracketShare {
	out := make([]BracketShare, len(brackets))
	for i, b := range brackets {
		out[i] = BracketShare{Bracket: b}
	}

	walkBrackets(income, brackets, func(i int, b TaxBracket, taxable decimal.Decimal) {
		out[i].Taxable = taxable.InexactFloat64()
		out[i].Tax = decimal.NewFromFloat(b.Rate).Mul(taxable).InexactFloat64()
	})
	return out
}

// MarginalIndex returns the index of the highest bracket whose Lower <= income,
// or -1 for an empty table.
func MarginalIndex(income float64, brackets Table) int {
	idx := -1
	for i, b := range brackets {
		if income < b.Lower {
			break
		}
		idx = i
	}
	if idx == -1 && len(brackets) > 0 {
		idx = 0
	}
	return idx
}

// walkBrackets calls fn for every bracket that taxes a positive amount.
// Non-finite or non-positive incomes tax nothing.
func walkBrackets(income float64, brackets Table, fn func(i int, b TaxBracket, taxable decimal.Decimal)) {
	if !(income > 0) || math.IsInf(income, 1) {
		return
	}
	inc := decimal.NewFromFloat(income)

	for i, b := range brackets {
		if income > b.Lower {
			top := inc
			if !b.Unbounded() && b.Upper < income {
				top = decimal.NewFromFloat(b.Upper)
			}
			taxable := top.Sub(decimal.NewFromFloat(b.Lower))
			if taxable.IsPositive() {
				fn(i, b, taxable)
			}
		}
		if b.Unbounded() || income <= b.Upper {
			break
		}
	}
}
