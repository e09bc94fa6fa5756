package registry

import (
	"context"
	"testing"

	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetByEmail(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifiedApplicant), args.Error(1)
}

func (m *MockRepo) GetSummary(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifiedApplicant), args.Error(1)
}

func (m *MockRepo) Upsert(ctx context.Context, record *models.VerifiedApplicant) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepo) EnsureExists(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockRepo) UpdateStatus(ctx context.Context, email string, status bool) error {
	args := m.Called(ctx, email, status)
	return args.Error(0)
}

func (m *MockRepo) IncrementBankCount(ctx context.Context, email string, fromCount int) error {
	args := m.Called(ctx, email, fromCount)
	return args.Error(0)
}

func (m *MockRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockRepo) List(ctx context.Context, offset, limit int) ([]*models.VerifiedApplicant, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.VerifiedApplicant), args.Get(1).(int64), args.Error(2)
}

func TestLookup(t *testing.T) {
	t.Run("absence maps to nil without error", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repositories.ErrVerifiedApplicantNotFound)

		record, err := NewService(repo).Lookup(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("existing record passes through", func(t *testing.T) {
		repo := new(MockRepo)
		stored := &models.VerifiedApplicant{Email: "amina@example.com", BankCount: 2}
		repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

		record, err := NewService(repo).Lookup(context.Background(), "amina@example.com")
		assert.NoError(t, err)
		assert.Equal(t, stored, record)
	})
}

func TestUpsertDetails(t *testing.T) {
	t.Run("rejects blank email", func(t *testing.T) {
		repo := new(MockRepo)
		err := NewService(repo).UpsertDetails(context.Background(), UpsertInput{Income: 100, CreditScore: 700})
		assert.ErrorIs(t, err, ErrInvalidDetails)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive figures", func(t *testing.T) {
		repo := new(MockRepo)
		err := NewService(repo).UpsertDetails(context.Background(), UpsertInput{
			Email: "amina@example.com", Income: 0, CreditScore: 700,
		})
		assert.ErrorIs(t, err, ErrInvalidDetails)
	})

	t.Run("writes trimmed record in good standing", func(t *testing.T) {
		repo := new(MockRepo)
		var saved *models.VerifiedApplicant
		repo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*models.VerifiedApplicant)
			}).Return(nil)

		err := NewService(repo).UpsertDetails(context.Background(), UpsertInput{
			Email:            "  amina@example.com ",
			Income:           60000,
			CreditScore:      700,
			EmploymentStatus: " Employed ",
			NationalID:       4411,
			Documents:        documents.Set{Identity: []byte("id")},
		})

		assert.NoError(t, err)
		assert.Equal(t, "amina@example.com", saved.Email)
		assert.Equal(t, "Employed", saved.EmploymentStatus)
		assert.True(t, saved.Status)
		assert.Equal(t, 1, saved.BankCount)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(MockRepo)
		err := NewService(repo).UpdateStatus(context.Background(), "amina@example.com", "Blocked")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("approved restores good standing", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("UpdateStatus", mock.Anything, "amina@example.com", true).Return(nil)
		err := NewService(repo).UpdateStatus(context.Background(), "amina@example.com", models.PredictionApproved)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejected and pending revoke standing", func(t *testing.T) {
		for _, status := range []string{models.PredictionRejected, models.PredictionPending} {
			repo := new(MockRepo)
			repo.On("UpdateStatus", mock.Anything, "amina@example.com", false).Return(nil)
			err := NewService(repo).UpdateStatus(context.Background(), "amina@example.com", status)
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		}
	})

	t.Run("missing record maps to not found", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("UpdateStatus", mock.Anything, "ghost@example.com", true).
			Return(repositories.ErrVerifiedApplicantNotFound)
		err := NewService(repo).UpdateStatus(context.Background(), "ghost@example.com", models.PredictionApproved)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocument(t *testing.T) {
	stored := &models.VerifiedApplicant{
		Email:       "amina@example.com",
		IdentityDoc: []byte("identity-scan"),
	}

	t.Run("returns stored blob", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

		blob, err := NewService(repo).Document(context.Background(), "amina@example.com", documents.KindIdentity)
		assert.NoError(t, err)
		assert.Equal(t, []byte("identity-scan"), blob)
	})

	t.Run("empty slot reports document not found", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

		_, err := NewService(repo).Document(context.Background(), "amina@example.com", documents.KindTax)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("unknown kind is rejected before lookup", func(t *testing.T) {
		repo := new(MockRepo)
		_, err := NewService(repo).Document(context.Background(), "amina@example.com", documents.Kind("passport"))
		assert.ErrorIs(t, err, ErrDocumentNotFound)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown applicant reports not found", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repositories.ErrVerifiedApplicantNotFound)

		_, err := NewService(repo).Document(context.Background(), "ghost@example.com", documents.KindIdentity)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
