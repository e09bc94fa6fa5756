// Package validation checks raw request input before it reaches any service.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrValidation is the base error for malformed applicant input. Handlers map
// it to a 400 response; nothing is persisted when it fires.
var ErrValidation = errors.New("validation failed")

// Employment statuses accepted on the application form.
var employmentStatuses = map[string]bool{
	"employed":      true,
	"self-employed": true,
	"unemployed":    true,
	"other":         true,
}

// EmploymentStatuses lists the accepted form values, sorted.
func EmploymentStatuses() []string {
	out := make([]string, 0, len(employmentStatuses))
	for s := range employmentStatuses {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ApplicantForm holds the raw string fields of a loan application as they
// arrive from the multipart form.
type ApplicantForm struct {
	Income           string
	CreditScore      string
	LoanAmount       string
	EmploymentStatus string
	NationalID       string
}

// ApplicantFields is the typed result of a successful parse.
type ApplicantFields struct {
	Income           float64
	CreditScore      int
	LoanAmount       float64
	EmploymentStatus string
	NationalID       int64
}

// ParseApplicant converts and checks the form fields. All failures are
// wrapped in ErrValidation with a field-specific message.
func ParseApplicant(form ApplicantForm) (*ApplicantFields, error) {
	income, err := strconv.ParseFloat(strings.TrimSpace(form.Income), 64)
	if err != nil || income <= 0 {
		return nil, fmt.Errorf("%w: income must be a positive number", ErrValidation)
	}

	creditScore, err := strconv.Atoi(strings.TrimSpace(form.CreditScore))
	if err != nil || creditScore <= 0 {
		return nil, fmt.Errorf("%w: credit score must be a positive integer", ErrValidation)
	}

	loanAmount, err := strconv.ParseFloat(strings.TrimSpace(form.LoanAmount), 64)
	if err != nil || loanAmount <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be a positive number", ErrValidation)
	}

	status := strings.TrimSpace(form.EmploymentStatus)
	if !employmentStatuses[strings.ToLower(status)] {
		return nil, fmt.Errorf("%w: unknown employment status %q", ErrValidation, status)
	}

	nationalID, err := strconv.ParseInt(strings.TrimSpace(form.NationalID), 10, 64)
	if err != nil || nationalID <= 0 {
		return nil, fmt.Errorf("%w: national id must be numeric", ErrValidation)
	}

	return &ApplicantFields{
		Income:           income,
		CreditScore:      creditScore,
		LoanAmount:       loanAmount,
		EmploymentStatus: status,
		NationalID:       nationalID,
	}, nil
}
