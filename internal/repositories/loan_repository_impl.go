package repositories

import (
	"context"
	"errors"

	"veriloan/internal/models"

	"gorm.io/gorm"
)

var applicationSummaryColumns = []string{
	"id", "reference_id", "user_id", "income", "credit_score", "loan_amount",
	"employment_status", "national_id", "prediction", "verification_flag",
	"rejection_reason", "rejection_suggestion", "suggestion", "created_at", "updated_at",
}

type loanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository creates a new LoanApplicationRepository.
func NewLoanApplicationRepository(db *gorm.DB) LoanApplicationRepository {
	return &loanApplicationRepository{db: db}
}

func (r *loanApplicationRepository) CreateWithProfile(ctx context.Context, app *models.LoanApplication, profile *models.CustomerProfile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		var existing models.CustomerProfile
		result := tx.Where("user_id = ?", profile.UserID).First(&existing)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			return tx.Create(profile).Error
		}
		return tx.Model(&existing).
			Update("last_rejection_suggestion", profile.LastRejectionSuggestion).Error
	})
	if err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *loanApplicationRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var app models.LoanApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &app, nil
}

func (r *loanApplicationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error) {
	var apps []*models.LoanApplication
	result := r.db.WithContext(ctx).Select(applicationSummaryColumns).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps)
	if result.Error != nil {
		return nil, ErrDatabaseOperation
	}
	return apps, nil
}

func (r *loanApplicationRepository) LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error) {
	var app models.LoanApplication
	result := r.db.WithContext(ctx).Select(applicationSummaryColumns).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &app, nil
}

func (r *loanApplicationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, ErrDatabaseOperation
	}
	return count, nil
}

func (r *loanApplicationRepository) UpdatePrediction(ctx context.Context, id uint, prediction string) error {
	result := r.db.WithContext(ctx).Model(&models.LoanApplication{}).
		Where("id = ?", id).
		Update("prediction", prediction)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *loanApplicationRepository) List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var apps []*models.LoanApplication
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	result := r.db.WithContext(ctx).Select(applicationSummaryColumns).
		Offset(offset).Limit(limit).Order("created_at DESC").Find(&apps)
	if result.Error != nil {
		return nil, 0, ErrDatabaseOperation
	}

	return apps, total, nil
}
