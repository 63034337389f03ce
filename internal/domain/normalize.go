package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxIncome is the ceiling applied to normalized input unless configured otherwise.
const DefaultMaxIncome = 1_000_000_000

// Normalize turns free-text input into an amount in [0, maxAllowed].
//
// Input is NFKC-normalized, then everything except ASCII digits and '.' is dropped.
// Only the first '.' acts as the decimal point; later periods are removed and their
// digits kept, so "1.2.3" reads as 1.23. A minus sign before the first digit makes
// the amount negative, which clamps to 0. Unparseable input yields 0. A negative or
// NaN ceiling is treated as 0.
func Normalize(raw string, maxAllowed float64) float64 {
	if math.IsNaN(maxAllowed) || maxAllowed < 0 {
		maxAllowed = 0
	}

	cleaned, negative := cleanAmount(norm.NFKC.String(raw))
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0
		}
		// Out of range: v is ±Inf and gets clamped below.
	}

	if negative || math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxAllowed {
		return maxAllowed
	}
	return v
}

// cleanAmount keeps digits and the first '.', and reports whether a minus sign
// preceded the first significant character.
func cleanAmount(s string) (string, bool) {
	var intPart, fracPart strings.Builder
	seenPoint := false
	seenSignificant := false
	negative := false

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenSignificant = true
			if seenPoint {
				fracPart.WriteRune(r)
			} else {
				intPart.WriteRune(r)
			}
		case r == '.':
			seenSignificant = true
			seenPoint = true
		case r == '-' || r == '−':
			if !seenSignificant {
				negative = true
			}
		}
	}

	if !seenPoint {
		return intPart.String(), negative
	}
	return intPart.String() + "." + fracPart.String(), negative
}

// FormatAmount renders an amount as the plain decimal string used for persistence.
// Normalize(FormatAmount(v), max) == v for every normalized v.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseStoredAmount reads a persisted amount. Anything that is not a finite,
// non-negative plain number reports ok=false.
func ParseStoredAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
