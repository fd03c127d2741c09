package controller

import (
	"github.com/shopspring/decimal"
)

// Summary holds the aggregates a list screen shows under the table. Values
// are exact decimals; rendering trims trailing zeros and applies no
// rounding, since the server does not define a precision for currency or
// weight fields.
type Summary struct {
	Count  int
	Totals map[string]decimal.Decimal
	Maxima map[string]decimal.Decimal
}

// Total returns the named sum, zero when absent.
func (s Summary) Total(label string) decimal.Decimal {
	return s.Totals[label]
}

// Max returns the named maximum, zero when absent.
func (s Summary) Max(label string) decimal.Decimal {
	return s.Maxima[label]
}

// Summarize aggregates the given records in a single pass. Callers pass the
// already-filtered subset; the function never reaches back to the full
// collection. Fields that fail to parse as decimals are skipped rather than
// treated as zero, so a malformed row cannot silently dilute a maximum.
func Summarize[T Record](s Schema[T], records []T) Summary {
	summary := Summary{
		Count:  len(records),
		Totals: make(map[string]decimal.Decimal, len(s.Sums)),
		Maxima: make(map[string]decimal.Decimal, len(s.Maxima)),
	}

	for label := range s.Sums {
		summary.Totals[label] = decimal.Zero
	}

	for _, rec := range records {
		for label, accessor := range s.Sums {
			value, err := decimal.NewFromString(accessor(rec))
			if err != nil {
				continue
			}
			summary.Totals[label] = summary.Totals[label].Add(value)
		}
		for label, accessor := range s.Maxima {
			value, err := decimal.NewFromString(accessor(rec))
			if err != nil {
				continue
			}
			current, seen := summary.Maxima[label]
			if !seen || value.GreaterThan(current) {
				summary.Maxima[label] = value
			}
		}
	}

	return summary
}
