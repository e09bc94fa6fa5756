// Package rules holds the deterministic rejection analysis: ordered business
// checks that turn a rejected application into a human-readable reason and an
// actionable suggestion.
package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Explanation is the outcome of a rejection analysis.
type Explanation struct {
	Reason     string
	Suggestion string

	// SuggestedAmount is the alternative loan amount when the income check
	// failed; zero otherwise.
	SuggestedAmount decimal.Decimal
}

// Eligible reports whether an employment status qualifies for a loan.
// Comparison ignores case and surrounding whitespace.
func Eligible(employmentStatus string) bool {
	s := strings.TrimSpace(employmentStatus)
	return strings.EqualFold(s, StatusEmployed) || strings.EqualFold(s, StatusSelfEmployed)
}

// MaxLoanAmount returns income × IncomeLoanRatio rounded to 2 decimal places.
func MaxLoanAmount(income float64) decimal.Decimal {
	return decimal.NewFromFloat(income).
		Mul(decimal.NewFromFloat(IncomeLoanRatio)).
		Round(2)
}

// Analyze applies the checks in fixed priority order and returns the first
// applicable explanation, or nil when no rule matched. Priority:
// credit score floor, employment eligibility, income-to-loan ratio. A nil
// result on a classifier-rejected application means the rejection came from
// internal checks only.
func Analyze(income float64, creditScore int, loanAmount float64, employmentStatus string) *Explanation {
	if creditScore <= CreditScoreFloor {
		return &Explanation{
			Reason:     fmt.Sprintf("Credit score (%d) is too low.", creditScore),
			Suggestion: fmt.Sprintf("Increase score to at least %d (current: %d).", CreditScoreFloor+1, creditScore),
		}
	}

	if !Eligible(employmentStatus) {
		return &Explanation{
			Reason:     "Unemployed applicants are not eligible.",
			Suggestion: "Only employed or self-employed applicants qualify.",
		}
	}

	if max := MaxLoanAmount(income); decimal.NewFromFloat(loanAmount).GreaterThan(max) {
		return &Explanation{
			Reason:          fmt.Sprintf("Income (%.2f) too low for %.2f loan.", income, loanAmount),
			Suggestion:      fmt.Sprintf("Apply for %s or less.", max.StringFixed(2)),
			SuggestedAmount: max,
		}
	}

	return nil
}

// AnalyzeAll is the batch/reporting variant: it collects every applicable
// reason and joins them with "; " instead of stopping at the first. An empty
// string means no rule matched.
func AnalyzeAll(income float64, creditScore int, loanAmount float64, employmentStatus string) string {
	var reasons []string

	if creditScore <= CreditScoreFloor {
		reasons = append(reasons, fmt.Sprintf("Credit score (%d) is too low.", creditScore))
	}
	if !Eligible(employmentStatus) {
		reasons = append(reasons, "Unemployed applicants are not eligible.")
	}
	if max := MaxLoanAmount(income); decimal.NewFromFloat(loanAmount).GreaterThan(max) {
		reasons = append(reasons, fmt.Sprintf("Income (%.2f) too low for %.2f loan; apply for %s or less.",
			income, loanAmount, max.StringFixed(2)))
	}

	return strings.Join(reasons, "; ")
}
