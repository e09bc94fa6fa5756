package decision

// Decision texts. These are customer-visible and stored on the application
// record, so formatting changes are product changes.
const (
	ReasonPreviousRejection     = "Previous rejection in another bank"
	SuggestionPreviousRejection = "Please improve your credit score or try with a different bank"
	NoteAutoRejected            = "Loan auto-rejected due to previous rejection in another bank"

	ReasonInternalChecks = "Loan denied based on internal checks."

	ReasonUnverified     = "Applicant is not present in the central verification registry."
	SuggestionUnverified = "Complete identity verification with a participating bank before reapplying."

	ReasonDetailMismatch     = "Submitted details do not match the verified registry record."
	SuggestionDetailMismatch = "Resubmit with the income, credit score and ID held on record."

	SuggestionProcessed = "Loan application processed successfully"

	// Stored on the customer profile when a submission produced no suggestion.
	placeholderNoSuggestion = "No Suggestion"
)

// bankCountRetries bounds optimistic retries of the bank-count increment
// before the submission is surfaced as a transient conflict.
const bankCountRetries = 3
