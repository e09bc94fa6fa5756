package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligible(t *testing.T) {
	assert.True(t, Eligible("Employed"))
	assert.True(t, Eligible("Self-Employed"))
	assert.True(t, Eligible("  employed  "))
	assert.True(t, Eligible("SELF-EMPLOYED"))
	assert.False(t, Eligible("Unemployed"))
	assert.False(t, Eligible("Student"))
	assert.False(t, Eligible(""))
}

func TestMaxLoanAmount(t *testing.T) {
	assert.Equal(t, "41665.00", MaxLoanAmount(50000).StringFixed(2))
	assert.Equal(t, "8333.00", MaxLoanAmount(10000).StringFixed(2))
	assert.Equal(t, "0.83", MaxLoanAmount(1).StringFixed(2))
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name             string
		income           float64
		creditScore      int
		loanAmount       float64
		employmentStatus string
		wantReason       string
		wantSuggestion   string
	}{
		{
			name:        "credit score below floor",
			income:      50000, creditScore: 450, loanAmount: 10000, employmentStatus: "Employed",
			wantReason:     "Credit score (450) is too low.",
			wantSuggestion: "Increase score to at least 501 (current: 450).",
		},
		{
			name:   "credit score exactly at floor fails",
			income: 50000, creditScore: 500, loanAmount: 10000, employmentStatus: "Employed",
			wantReason:     "Credit score (500) is too low.",
			wantSuggestion: "Increase score to at least 501 (current: 500).",
		},
		{
			name:   "credit wins over employment when both fail",
			income: 50000, creditScore: 450, loanAmount: 10000, employmentStatus: "Unemployed",
			wantReason: "Credit score (450) is too low.",
		},
		{
			name:   "unemployed applicant",
			income: 50000, creditScore: 700, loanAmount: 10000, employmentStatus: "Unemployed",
			wantReason:     "Unemployed applicants are not eligible.",
			wantSuggestion: "Only employed or self-employed applicants qualify.",
		},
		{
			name:   "loan beyond income ratio",
			income: 50000, creditScore: 700, loanAmount: 45000, employmentStatus: "Employed",
			wantReason:     "Income (50000.00) too low for 45000.00 loan.",
			wantSuggestion: "Apply for 41665.00 or less.",
		},
		{
			name:   "loan exactly at the cap passes",
			income: 50000, creditScore: 700, loanAmount: 41665, employmentStatus: "Employed",
		},
		{
			name:   "self-employed within limits",
			income: 80000, creditScore: 650, loanAmount: 20000, employmentStatus: "Self-Employed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expl := Analyze(tt.income, tt.creditScore, tt.loanAmount, tt.employmentStatus)
			if tt.wantReason == "" {
				assert.Nil(t, expl)
				return
			}

			assert.NotNil(t, expl)
			assert.Equal(t, tt.wantReason, expl.Reason)
			if tt.wantSuggestion != "" {
				assert.Equal(t, tt.wantSuggestion, expl.Suggestion)
			}
		})
	}
}

func TestAnalyzeSuggestedAmount(t *testing.T) {
	expl := Analyze(50000, 700, 45000, "Employed")
	assert.NotNil(t, expl)
	assert.Equal(t, "41665.00", expl.SuggestedAmount.StringFixed(2))

	expl = Analyze(50000, 450, 45000, "Employed")
	assert.NotNil(t, expl)
	assert.True(t, expl.SuggestedAmount.IsZero())
}

func TestAnalyzeAll(t *testing.T) {
	got := AnalyzeAll(10000, 450, 45000, "Unemployed")
	assert.Equal(t,
		"Credit score (450) is too low.; "+
			"Unemployed applicants are not eligible.; "+
			"Income (10000.00) too low for 45000.00 loan; apply for 8333.00 or less.",
		got)

	assert.Equal(t, "", AnalyzeAll(50000, 700, 10000, "Employed"))
}
