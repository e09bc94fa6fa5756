package rules

// Business constants fixed across the product. Changing either changes the
// decision texts customers see, so they are named here rather than inlined.
const (
	// CreditScoreFloor is the inclusive score at or below which applicants are
	// rejected outright.
	CreditScoreFloor = 500

	// IncomeLoanRatio caps the loan at this fraction of declared income
	// (approximately 5/6). The suggested alternative amount is
	// income × IncomeLoanRatio rounded to 2 decimal places.
	IncomeLoanRatio = 0.8333
)

// Eligible employment statuses.
const (
	StatusEmployed     = "Employed"
	StatusSelfEmployed = "Self-Employed"
)
