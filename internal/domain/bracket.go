package domain

import (
	"fmt"
	"math"
)

// TaxBracket is a contiguous income range taxed at a single marginal rate.
// Both bounds are inclusive. The top bracket of a table has Upper = +Inf.
type TaxBracket struct {
	Rate  float64
	Lower float64
	Upper float64
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return math.IsInf(b.Upper, 1)
}

// Contains reports whether income falls inside [Lower, Upper].
func (b TaxBracket) Contains(income float64) bool {
	return income >= b.Lower && (b.Unbounded() || income <= b.Upper)
}

// Table is an ordered sequence of brackets partitioning [0, +Inf).
type Table []TaxBracket

// DefaultTable returns the built-in bracket table.
func DefaultTable() Table {
	return Table{
		{Rate: 0.10, Lower: 0, Upper: 20550},
		{Rate: 0.12, Lower: 20551, Upper: 83550},
		{Rate: 0.22, Lower: 83551, Upper: 178150},
		{Rate: 0.24, Lower: 178151, Upper: 340100},
		{Rate: 0.32, Lower: 340101, Upper: 431900},
		{Rate: 0.35, Lower: 431901, Upper: 647850},
		{Rate: 0.37, Lower: 647851, Upper: math.Inf(1)},
	}
}

// Clone returns a copy that callers may modify freely.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// TopRate returns the highest marginal rate in the table (0 for an empty table).
func (t Table) TopRate() float64 {
	top := 0.0
	for _, b := range t {
		if b.Rate > top {
			top = b.Rate
		}
	}
	return top
}

// Validate checks that the table partitions [0, +Inf) in whole currency units:
// it starts at 0, every next Lower lies in (prev.Upper, prev.Upper+1], rates are
// in (0, 1], and exactly the last bracket is unbounded.
//
// ComputeTax assumes a valid table and does not call Validate itself.
func (t Table) Validate() error {
	if len(t) == 0 {
		return bracketErr(-1, "table is empty")
	}

	for i, b := range t {
		if math.IsNaN(b.Rate) || b.Rate <= 0 || b.Rate > 1 {
			return bracketErr(i, fmt.Sprintf("rate %v must be in (0, 1]", b.Rate))
		}
		if math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0) || b.Lower < 0 {
			return bracketErr(i, fmt.Sprintf("lower bound %v must be a finite value >= 0", b.Lower))
		}
		if math.IsNaN(b.Upper) || b.Upper <= b.Lower {
			return bracketErr(i, fmt.Sprintf("upper bound %v must be greater than lower bound %v", b.Upper, b.Lower))
		}

		last := i == len(t)-1
		if b.Unbounded() && !last {
			return bracketErr(i, "only the last bracket may be unbounded")
		}
		if last && !b.Unbounded() {
			return bracketErr(i, "last bracket must be unbounded")
		}

		if i == 0 {
			if b.Lower != 0 {
				return bracketErr(i, fmt.Sprintf("first bracket must start at 0, got %v", b.Lower))
			}
			continue
		}

		prev := t[i-1]
		if b.Lower <= prev.Upper {
			return bracketErr(i, fmt.Sprintf("lower bound %v overlaps previous upper bound %v", b.Lower, prev.Upper))
		}
		if b.Lower > prev.Upper+1 {
			return bracketErr(i, fmt.Sprintf("gap between previous upper bound %v and lower bound %v", prev.Upper, b.Lower))
		}
	}

	return nil
}

func bracketErr(index int, msg string) error {
	if index < 0 {
		return fmt.Errorf("brackets: %s: %w", msg, ErrInvalidBrackets)
	}
	return fmt.Errorf("brackets[%d]: %s: %w", index, msg, ErrInvalidBrackets)
}
