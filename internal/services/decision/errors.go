package decision

import "errors"

var (
	// ErrDocumentMismatch is a hard stop: submitted documents differ from the
	// registry reference. No application record is written.
	ErrDocumentMismatch = errors.New("uploaded documents do not match verified records")

	// ErrMissingDocuments means one or more required proof documents were not
	// supplied.
	ErrMissingDocuments = errors.New("all required documents must be uploaded")

	// ErrInvalidInput covers malformed applicant figures caught before any
	// registry or classifier work.
	ErrInvalidInput = errors.New("invalid application input")

	// ErrInvalidPrediction rejects admin prediction values outside
	// Pending/Approved/Rejected.
	ErrInvalidPrediction = errors.New("invalid prediction value")
)
