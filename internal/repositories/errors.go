package repositories

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrVerifiedApplicantNotFound = errors.New("verified applicant not found")
	ErrApplicationNotFound       = errors.New("loan application not found")
	ErrDatabaseOperation         = errors.New("database operation failed")

	// ErrConcurrentUpdate signals an optimistic-write conflict (bank count or
	// status raced with another writer). Safe to resubmit.
	ErrConcurrentUpdate = errors.New("concurrent registry update conflict")
)
