package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() ApplicantForm {
	return ApplicantForm{
		Income:           "60000",
		CreditScore:      "700",
		LoanAmount:       "20000",
		EmploymentStatus: "Employed",
		NationalID:       "4411",
	}
}

func TestParseApplicant(t *testing.T) {
	t.Run("valid form parses", func(t *testing.T) {
		fields, err := ParseApplicant(validForm())
		assert.NoError(t, err)
		assert.Equal(t, 60000.0, fields.Income)
		assert.Equal(t, 700, fields.CreditScore)
		assert.Equal(t, 20000.0, fields.LoanAmount)
		assert.Equal(t, "Employed", fields.EmploymentStatus)
		assert.Equal(t, int64(4411), fields.NationalID)
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		form := validForm()
		form.Income = " 60000 "
		form.EmploymentStatus = " Self-Employed "
		fields, err := ParseApplicant(form)
		assert.NoError(t, err)
		assert.Equal(t, 60000.0, fields.Income)
		assert.Equal(t, "Self-Employed", fields.EmploymentStatus)
	})

	tests := []struct {
		name   string
		mutate func(*ApplicantForm)
		msg    string
	}{
		{"non-numeric income", func(f *ApplicantForm) { f.Income = "lots" }, "income"},
		{"negative income", func(f *ApplicantForm) { f.Income = "-5" }, "income"},
		{"fractional credit score", func(f *ApplicantForm) { f.CreditScore = "700.5" }, "credit score"},
		{"zero credit score", func(f *ApplicantForm) { f.CreditScore = "0" }, "credit score"},
		{"missing loan amount", func(f *ApplicantForm) { f.LoanAmount = "" }, "loan amount"},
		{"unknown employment status", func(f *ApplicantForm) { f.EmploymentStatus = "Retired" }, "employment status"},
		{"alphabetic national id", func(f *ApplicantForm) { f.NationalID = "AB123" }, "national id"},
		{"zero national id", func(f *ApplicantForm) { f.NationalID = "0" }, "national id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			fields, err := ParseApplicant(form)
			assert.Nil(t, fields)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestEmploymentStatuses(t *testing.T) {
	got := EmploymentStatuses()
	assert.Equal(t, []string{"employed", "other", "self-employed", "unemployed"}, got)
}
