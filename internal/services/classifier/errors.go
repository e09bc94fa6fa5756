package classifier

import "errors"

var (
	// ErrModelUnavailable means no prediction could be produced. The current
	// submission must fail; the caller must not fall back to a default decision.
	ErrModelUnavailable = errors.New("classifier model unavailable")

	// ErrInvalidFeatureVector means the inputs cannot form a valid vector.
	ErrInvalidFeatureVector = errors.New("invalid feature vector")
)
