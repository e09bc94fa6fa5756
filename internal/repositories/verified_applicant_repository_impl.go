package repositories

import (
	"context"
	"errors"
	"log"

	"veriloan/internal/models"
	"veriloan/internal/repositories/cache"

	"gorm.io/gorm"
)

// Columns safe to load when the document blobs are not needed.
var verifiedSummaryColumns = []string{
	"id", "email", "correct_income", "correct_credit_score", "employment_status",
	"national_id", "bank_count", "status", "created_at", "updated_at",
}

type verifiedApplicantRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewVerifiedApplicantRepository creates a new VerifiedApplicantRepository.
func NewVerifiedApplicantRepository(db *gorm.DB, cache *cache.CacheService) VerifiedApplicantRepository {
	return &verifiedApplicantRepository{db: db, cache: cache}
}

func (r *verifiedApplicantRepository) GetByEmail(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	var record models.VerifiedApplicant
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrVerifiedApplicantNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &record, nil
}

func (r *verifiedApplicantRepository) GetSummary(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	if record, err := r.cache.GetVerifiedApplicant(ctx, email); err == nil {
		return record, nil
	}

	var record models.VerifiedApplicant
	result := r.db.WithContext(ctx).Select(verifiedSummaryColumns).
		Where("email = ?", email).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrVerifiedApplicantNotFound
		}
		return nil, ErrDatabaseOperation
	}

	if err := r.cache.CacheVerifiedApplicant(ctx, &record); err != nil {
		log.Printf("Failed to cache verified applicant %s: %v", email, err)
	}
	return &record, nil
}

func (r *verifiedApplicantRepository) Upsert(ctx context.Context, record *models.VerifiedApplicant) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.VerifiedApplicant
		result := tx.Where("email = ?", record.Email).First(&existing)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			if record.BankCount < 1 {
				record.BankCount = 1
			}
			return tx.Create(record).Error
		}

		updates := map[string]interface{}{
			"correct_income":       record.CorrectIncome,
			"correct_credit_score": record.CorrectCreditScore,
			"employment_status":    record.EmploymentStatus,
			"national_id":          record.NationalID,
		}
		// Reference documents are only replaced when a new blob was supplied.
		if len(record.IdentityDoc) > 0 {
			updates["identity_doc"] = record.IdentityDoc
		}
		if len(record.TaxDoc) > 0 {
			updates["tax_doc"] = record.TaxDoc
		}
		if len(record.IncomeDoc) > 0 {
			updates["income_doc"] = record.IncomeDoc
		}
		return tx.Model(&models.VerifiedApplicant{}).
			Where("email = ?", record.Email).Updates(updates).Error
	})
	if err != nil {
		return ErrDatabaseOperation
	}

	r.invalidate(ctx, record.Email)
	return nil
}

func (r *verifiedApplicantRepository) EnsureExists(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.VerifiedApplicant
		result := tx.Where("email = ?", email).First(&existing)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			return tx.Create(&models.VerifiedApplicant{Email: email, BankCount: 1, Status: true}).Error
		}
		return tx.Model(&models.VerifiedApplicant{}).
			Where("email = ?", email).
			UpdateColumn("bank_count", gorm.Expr("bank_count + 1")).Error
	})
	if err != nil {
		return ErrDatabaseOperation
	}

	r.invalidate(ctx, email)
	return nil
}

func (r *verifiedApplicantRepository) UpdateStatus(ctx context.Context, email string, status bool) error {
	result := r.db.WithContext(ctx).Model(&models.VerifiedApplicant{}).
		Where("email = ?", email).
		Update("status", status)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrVerifiedApplicantNotFound
	}

	r.invalidate(ctx, email)
	return nil
}

// IncrementBankCount performs an optimistic compare-and-set: the UPDATE only
// lands when bank_count still equals the value the caller read. A zero-row
// outcome means another institution won the race.
func (r *verifiedApplicantRepository) IncrementBankCount(ctx context.Context, email string, fromCount int) error {
	result := r.db.WithContext(ctx).Model(&models.VerifiedApplicant{}).
		Where("email = ? AND bank_count = ?", email, fromCount).
		UpdateColumn("bank_count", gorm.Expr("bank_count + 1"))
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}

	r.invalidate(ctx, email)
	return nil
}

func (r *verifiedApplicantRepository) Delete(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.VerifiedApplicant{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrVerifiedApplicantNotFound
	}

	r.invalidate(ctx, email)
	return nil
}

func (r *verifiedApplicantRepository) List(ctx context.Context, offset, limit int) ([]*models.VerifiedApplicant, int64, error) {
	var records []*models.VerifiedApplicant
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.VerifiedApplicant{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	result := r.db.WithContext(ctx).Select(verifiedSummaryColumns).
		Offset(offset).Limit(limit).Order("updated_at DESC").Find(&records)
	if result.Error != nil {
		return nil, 0, ErrDatabaseOperation
	}

	return records, total, nil
}

func (r *verifiedApplicantRepository) invalidate(ctx context.Context, email string) {
	if err := r.cache.InvalidateVerifiedApplicant(ctx, email); err != nil {
		log.Printf("Warning: failed to invalidate verified applicant cache for %s: %v", email, err)
	}
}
