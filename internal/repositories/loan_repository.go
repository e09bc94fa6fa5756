package repositories

import (
	"context"

	"veriloan/internal/models"
)

// LoanApplicationRepository persists application records. Records are
// append-only from the applicant's perspective; administrators may update the
// prediction through the narrow UpdatePrediction operation.
type LoanApplicationRepository interface {
	// CreateWithProfile writes the application record and upserts the customer
	// profile in one transaction. Either both land or neither does.
	CreateWithProfile(ctx context.Context, app *models.LoanApplication, profile *models.CustomerProfile) error

	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)

	// ListByUser returns a user's applications, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error)

	// LatestByUser returns the most recent application, or
	// ErrApplicationNotFound when the user has none.
	LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error)

	// CountByUser reports how many applications the user has filed here.
	CountByUser(ctx context.Context, userID uint) (int64, error)

	// UpdatePrediction changes only the prediction column.
	UpdatePrediction(ctx context.Context, id uint, prediction string) error

	// List retrieves all applications with pagination, blobs excluded.
	List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
}
