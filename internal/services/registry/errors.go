package registry

import "errors"

var (
	// ErrNotFound is returned by admin mutations when no registry record
	// exists for the email. Plain lookups treat absence as a normal outcome
	// and return nil instead.
	ErrNotFound = errors.New("no registry record for applicant")

	// ErrInvalidStatus is returned when a status update names anything other
	// than Pending, Approved or Rejected.
	ErrInvalidStatus = errors.New("invalid registry status")

	// ErrDocumentNotFound is returned when the requested reference document
	// slot is empty.
	ErrDocumentNotFound = errors.New("reference document not found")

	// ErrInvalidDetails is returned when a verified-detail upsert is missing
	// required fields.
	ErrInvalidDetails = errors.New("invalid verified details")
)
