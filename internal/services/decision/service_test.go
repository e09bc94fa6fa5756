package decision

import (
	"context"
	"errors"
	"testing"

	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/classifier"
	"veriloan/internal/services/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) GetByEmail(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifiedApplicant), args.Error(1)
}

func (m *MockRegistry) IncrementBankCount(ctx context.Context, email string, fromCount int) error {
	args := m.Called(ctx, email, fromCount)
	return args.Error(0)
}

type MockApps struct {
	mock.Mock
}

func (m *MockApps) CreateWithProfile(ctx context.Context, app *models.LoanApplication, profile *models.CustomerProfile) error {
	args := m.Called(ctx, app, profile)
	return args.Error(0)
}

func (m *MockApps) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockApps) ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanApplication), args.Error(1)
}

func (m *MockApps) LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockApps) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApps) UpdatePrediction(ctx context.Context, id uint, prediction string) error {
	args := m.Called(ctx, id, prediction)
	return args.Error(0)
}

func (m *MockApps) List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.LoanApplication), args.Get(1).(int64), args.Error(2)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, f classifier.Features) (classifier.Label, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(classifier.Label), args.Error(1)
}

func testDocs() documents.Set {
	return documents.Set{
		Identity: []byte("identity-scan"),
		Tax:      []byte("tax-return"),
		Income:   []byte("payslip"),
	}
}

func testApplication() Application {
	return Application{
		UserID:           7,
		Email:            "amina@example.com",
		Income:           60000,
		CreditScore:      700,
		LoanAmount:       20000,
		EmploymentStatus: "Employed",
		NationalID:       4411,
		Documents:        testDocs(),
	}
}

// matchingRecord returns a good-standing registry record whose figures and
// documents equal testApplication's.
func matchingRecord() *models.VerifiedApplicant {
	docs := testDocs()
	return &models.VerifiedApplicant{
		Email:              "amina@example.com",
		CorrectIncome:      60000,
		CorrectCreditScore: 700,
		EmploymentStatus:   "Employed",
		NationalID:         4411,
		BankCount:          1,
		Status:             true,
		IdentityDoc:        docs.Identity,
		TaxDoc:             docs.Tax,
		IncomeDoc:          docs.Income,
	}
}

func newTestService(registry *MockRegistry, apps *MockApps, predictor *MockPredictor) Service {
	return NewService(registry, apps, predictor, NoopMetricsCollector{})
}

func TestSubmit_FullMatchApproved(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).Return(nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)

	var written *models.LoanApplication
	var profile *models.CustomerProfile
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(*models.LoanApplication)
			profile = args.Get(2).(*models.CustomerProfile)
		}).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionApproved, outcome.Decision)
	assert.True(t, outcome.VerificationFlag)
	assert.Empty(t, outcome.Reason)
	assert.Equal(t, SuggestionProcessed, outcome.Suggestion)
	assert.NotEmpty(t, outcome.ReferenceID)

	assert.Equal(t, models.PredictionApproved, written.Prediction)
	assert.Equal(t, uint(7), written.UserID)
	assert.Equal(t, "No Suggestion", profile.LastRejectionSuggestion)

	registry.AssertExpectations(t)
	apps.AssertExpectations(t)
	predictor.AssertExpectations(t)
}

func TestSubmit_AbsentFromRegistryNeverApproved(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").
		Return(nil, repositories.ErrVerifiedApplicantNotFound)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionRejected, outcome.Decision)
	assert.False(t, outcome.VerificationFlag)
	assert.Equal(t, ReasonUnverified, outcome.Reason)

	// No registry record means the shared count is never touched.
	registry.AssertNotCalled(t, "IncrementBankCount", mock.Anything, mock.Anything, mock.Anything)
	apps.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
}

func TestSubmit_PriorRejectionAutoRejects(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	record := matchingRecord()
	record.Status = false
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(record, nil)

	var written *models.LoanApplication
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(*models.LoanApplication)
		}).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionRejected, outcome.Decision)
	assert.Equal(t, ReasonPreviousRejection, outcome.Reason)
	assert.Equal(t, NoteAutoRejected, outcome.Suggestion)
	assert.Equal(t, SuggestionPreviousRejection, written.RejectionSuggestion)
	assert.True(t, written.VerificationFlag)

	// The short circuit happens before the model and the bank count.
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	registry.AssertNotCalled(t, "IncrementBankCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_DocumentMismatchWritesNothing(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	record := matchingRecord()
	record.TaxDoc = []byte("different-tax-return")
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(record, nil)

	_, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.ErrorIs(t, err, ErrDocumentMismatch)
	apps.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestSubmit_DetailMismatchRejected(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	record := matchingRecord()
	record.CorrectIncome = 75000
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(record, nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).Return(nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionRejected, outcome.Decision)
	assert.False(t, outcome.VerificationFlag)
	assert.Equal(t, ReasonDetailMismatch, outcome.Reason)
}

func TestSubmit_RuleFindingWinsOverInternalChecks(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	app := testApplication()
	app.CreditScore = 450

	record := matchingRecord()
	record.CorrectCreditScore = 450
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(record, nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).Return(nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelRejected, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), app)

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionRejected, outcome.Decision)
	assert.Equal(t, "Credit score (450) is too low.", outcome.Reason)
}

func TestSubmit_InternalChecksReasonWhenNoRuleMatches(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).Return(nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelRejected, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionRejected, outcome.Decision)
	assert.Equal(t, ReasonInternalChecks, outcome.Reason)
}

func TestSubmit_ClassifierUnavailableWritesNothing(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).Return(nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(classifier.Label(""), classifier.ErrModelUnavailable)

	_, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.ErrorIs(t, err, classifier.ErrModelUnavailable)
	apps.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_BankCountNotBumpedOnRepeatApplication(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(2), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	registry.AssertNotCalled(t, "IncrementBankCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_BankCountNotBumpedWhenAlreadyRaised(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	record := matchingRecord()
	record.BankCount = 2
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(record, nil)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	registry.AssertNotCalled(t, "IncrementBankCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_BankCountConflictResolvedByReread(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	raised := matchingRecord()
	raised.BankCount = 2

	// First lookup sees a single institution; the guarded update loses the
	// race, and the re-read shows another bank already moved the count.
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil).Once()
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).
		Return(repositories.ErrConcurrentUpdate).Once()
	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(raised, nil).Once()

	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(classifier.LabelApproved, nil)
	apps.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.NoError(t, err)
	assert.Equal(t, models.PredictionApproved, outcome.Decision)
	registry.AssertExpectations(t)
}

func TestSubmit_BankCountConflictExhaustsRetries(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)

	registry.On("GetByEmail", mock.Anything, "amina@example.com").Return(matchingRecord(), nil)
	registry.On("IncrementBankCount", mock.Anything, "amina@example.com", 1).
		Return(repositories.ErrConcurrentUpdate)
	apps.On("CountByUser", mock.Anything, uint(7)).Return(int64(0), nil)

	_, err := newTestService(registry, apps, predictor).Submit(context.Background(), testApplication())

	assert.ErrorIs(t, err, repositories.ErrConcurrentUpdate)
	apps.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Application)
		want   error
	}{
		{"missing email", func(a *Application) { a.Email = " " }, ErrInvalidInput},
		{"zero user id", func(a *Application) { a.UserID = 0 }, ErrInvalidInput},
		{"non-positive income", func(a *Application) { a.Income = 0 }, ErrInvalidInput},
		{"non-positive loan", func(a *Application) { a.LoanAmount = -1 }, ErrInvalidInput},
		{"non-positive credit score", func(a *Application) { a.CreditScore = 0 }, ErrInvalidInput},
		{"non-positive national id", func(a *Application) { a.NationalID = 0 }, ErrInvalidInput},
		{"missing document", func(a *Application) { a.Documents.Tax = nil }, ErrMissingDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := new(MockRegistry)
			apps := new(MockApps)
			predictor := new(MockPredictor)

			app := testApplication()
			tt.mutate(&app)

			_, err := newTestService(registry, apps, predictor).Submit(context.Background(), app)

			assert.ErrorIs(t, err, tt.want)
			registry.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
			apps.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdatePrediction(t *testing.T) {
	registry := new(MockRegistry)
	apps := new(MockApps)
	predictor := new(MockPredictor)
	svc := newTestService(registry, apps, predictor)

	t.Run("rejects unknown value", func(t *testing.T) {
		err := svc.UpdatePrediction(context.Background(), 1, "Maybe")
		assert.ErrorIs(t, err, ErrInvalidPrediction)
		apps.AssertNotCalled(t, "UpdatePrediction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes valid value through", func(t *testing.T) {
		apps.On("UpdatePrediction", mock.Anything, uint(1), models.PredictionApproved).Return(nil)
		err := svc.UpdatePrediction(context.Background(), 1, models.PredictionApproved)
		assert.NoError(t, err)
		apps.AssertExpectations(t)
	})

	t.Run("surfaces missing record", func(t *testing.T) {
		apps.On("UpdatePrediction", mock.Anything, uint(99), models.PredictionRejected).
			Return(repositories.ErrApplicationNotFound)
		err := svc.UpdatePrediction(context.Background(), 99, models.PredictionRejected)
		assert.True(t, errors.Is(err, repositories.ErrApplicationNotFound))
	})
}
