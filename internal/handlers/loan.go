package handlers

import (
	"errors"
	"io"
	"log"

	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/classifier"
	"veriloan/internal/services/decision"
	"veriloan/internal/services/documents"
	"veriloan/internal/utils/pagination"
	"veriloan/internal/utils/response"
	"veriloan/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type LoanHandler struct {
	decisionService decision.Service
}

func NewLoanHandler(decisionService decision.Service) *LoanHandler {
	return &LoanHandler{
		decisionService: decisionService,
	}
}

// Apply accepts a multipart loan application, runs it through the decision
// engine and returns the outcome. Validation failures and document mismatches
// leave no record behind.
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	fields, err := validation.ParseApplicant(validation.ApplicantForm{
		Income:           c.FormValue("income"),
		CreditScore:      c.FormValue("credit_score"),
		LoanAmount:       c.FormValue("loan_amount"),
		EmploymentStatus: c.FormValue("employment_status"),
		NationalID:       c.FormValue("national_id"),
	})
	if err != nil {
		return response.ValidationError(c, err.Error())
	}

	docs := documents.Set{
		Identity: readFormFile(c, "identity_doc"),
		Tax:      readFormFile(c, "tax_doc"),
		Income:   readFormFile(c, "income_doc"),
	}
	if !docs.Complete() {
		return response.ValidationError(c, decision.ErrMissingDocuments.Error())
	}

	outcome, err := h.decisionService.Submit(c.Context(), decision.Application{
		UserID:           claims.UserID,
		Email:            claims.Email,
		Income:           fields.Income,
		CreditScore:      fields.CreditScore,
		LoanAmount:       fields.LoanAmount,
		EmploymentStatus: fields.EmploymentStatus,
		NationalID:       fields.NationalID,
		Documents:        docs,
	})
	if err != nil {
		switch {
		case errors.Is(err, decision.ErrDocumentMismatch):
			return response.Conflict(c, "Uploaded documents do not match our verified records")
		case errors.Is(err, decision.ErrInvalidInput), errors.Is(err, decision.ErrMissingDocuments),
			errors.Is(err, classifier.ErrInvalidFeatureVector):
			return response.ValidationError(c, err.Error())
		case errors.Is(err, classifier.ErrModelUnavailable):
			return response.Unavailable(c, "Loan evaluation is temporarily unavailable")
		case errors.Is(err, repositories.ErrConcurrentUpdate):
			return response.Conflict(c, "Registry busy, please resubmit")
		default:
			log.Printf("Loan submission failed for user %d: %v", claims.UserID, err)
			return response.ServerError(c, "Failed to process loan application")
		}
	}

	return response.Success(c, "Loan application submitted", outcome)
}

// MyApplications lists the caller's applications, newest first.
func (h *LoanHandler) MyApplications(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	apps, err := h.decisionService.ListByUser(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to fetch applications")
	}

	return response.Success(c, "Loan applications", apps)
}

// LatestApplication returns the caller's most recent application plus a
// rendered status line for the dashboard.
func (h *LoanHandler) LatestApplication(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	app, err := h.decisionService.LatestByUser(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return response.NotFound(c, "No loan application found")
		}
		return response.ServerError(c, "Failed to fetch application")
	}

	var status string
	switch app.Prediction {
	case models.PredictionApproved:
		status = "Loan approved"
	case models.PredictionRejected:
		status = app.RejectionReason
		if status == "" {
			status = "Loan rejected"
		}
	default:
		status = "Loan application is under review"
	}

	return response.Success(c, "Latest loan application", fiber.Map{
		"application": app,
		"status":      status,
		"suggestion":  app.Suggestion,
	})
}

// ListAll is the admin view over every application.
func (h *LoanHandler) ListAll(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	apps, total, err := h.decisionService.ListAll(c.Context(), p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to fetch applications")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, apps))
}

// UpdatePrediction is the narrow admin mutation on a stored record.
func (h *LoanHandler) UpdatePrediction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid application id")
	}

	var input struct {
		Prediction string `json:"prediction"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.decisionService.UpdatePrediction(c.Context(), uint(id), input.Prediction); err != nil {
		switch {
		case errors.Is(err, decision.ErrInvalidPrediction):
			return response.BadRequest(c, "Prediction must be Pending, Approved or Rejected")
		case errors.Is(err, repositories.ErrApplicationNotFound):
			return response.NotFound(c, "Loan application not found")
		default:
			return response.ServerError(c, "Failed to update prediction")
		}
	}

	return response.Success(c, "Prediction updated", nil)
}

// readFormFile returns the uploaded file's bytes, or nil when absent.
func readFormFile(c *fiber.Ctx, name string) []byte {
	header, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	f, err := header.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file %s: %v", name, err)
		return nil
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("Failed to read uploaded file %s: %v", name, err)
		return nil
	}
	return data
}
