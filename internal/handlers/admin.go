package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"veriloan/internal/services/documents"
	"veriloan/internal/services/registry"
	"veriloan/internal/services/user"
	"veriloan/internal/utils/pagination"
	"veriloan/internal/utils/response"
	"veriloan/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler groups the back-office operations: registry maintenance and
// user administration. Routes are mounted behind AdminAuthMiddleware.
type AdminHandler struct {
	registryService registry.Service
	userService     user.Service
}

func NewAdminHandler(registryService registry.Service, userService user.Service) *AdminHandler {
	return &AdminHandler{
		registryService: registryService,
		userService:     userService,
	}
}

// ListVerifiedApplicants pages through the registry for the admin screen.
func (h *AdminHandler) ListVerifiedApplicants(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	records, total, err := h.registryService.List(c.Context(), p.Offset, p.Limit)
	if err != nil {
		log.Printf("Error listing verified applicants: %v", err)
		return response.ServerError(c, "Failed to fetch verified applicants")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, records))
}

// GetVerifiedApplicant returns a single registry record without its blobs.
func (h *AdminHandler) GetVerifiedApplicant(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	record, err := h.registryService.Summary(c.Context(), email)
	if err != nil {
		return response.ServerError(c, "Failed to fetch verified applicant")
	}
	if record == nil {
		return response.NotFound(c, "Verified applicant not found")
	}

	return response.Success(c, "Verified applicant", record)
}

// UpsertVerifiedApplicant creates or updates verified figures and reference
// documents for an applicant. Documents are optional on update; existing
// blobs are kept when a part is not uploaded.
func (h *AdminHandler) UpsertVerifiedApplicant(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	income, err := strconv.ParseFloat(c.FormValue("income"), 64)
	if err != nil {
		return response.ValidationError(c, "income must be a number")
	}
	creditScore, err := strconv.Atoi(c.FormValue("credit_score"))
	if err != nil {
		return response.ValidationError(c, "credit_score must be an integer")
	}
	nationalID, err := strconv.ParseInt(c.FormValue("national_id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "national_id must be an integer")
	}

	input := registry.UpsertInput{
		Email:            email,
		Income:           income,
		CreditScore:      creditScore,
		EmploymentStatus: c.FormValue("employment_status"),
		NationalID:       nationalID,
		Documents: documents.Set{
			Identity: readFormFile(c, "identity_doc"),
			Tax:      readFormFile(c, "tax_doc"),
			Income:   readFormFile(c, "income_doc"),
		},
	}

	if err := h.registryService.UpsertDetails(c.Context(), input); err != nil {
		if errors.Is(err, registry.ErrInvalidDetails) {
			return response.ValidationError(c, err.Error())
		}
		log.Printf("Error upserting verified applicant %s: %v", email, err)
		return response.ServerError(c, "Failed to save verified applicant")
	}

	return response.Success(c, "Verified applicant saved", nil)
}

// UpdateRegistryStatus flips an applicant's cross-bank standing. Approved
// restores good standing; Rejected and Pending revoke it.
func (h *AdminHandler) UpdateRegistryStatus(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.registryService.UpdateStatus(c.Context(), email, input.Status); err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be Pending, Approved or Rejected")
		case errors.Is(err, registry.ErrNotFound):
			return response.NotFound(c, "Verified applicant not found")
		default:
			log.Printf("Error updating registry status for %s: %v", email, err)
			return response.ServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated", nil)
}

// DeleteVerifiedApplicant removes a registry record.
func (h *AdminHandler) DeleteVerifiedApplicant(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.registryService.Delete(c.Context(), email); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return response.NotFound(c, "Verified applicant not found")
		}
		log.Printf("Error deleting verified applicant %s: %v", email, err)
		return response.ServerError(c, "Failed to delete verified applicant")
	}

	return response.Success(c, "Verified applicant deleted", nil)
}

// ListUsers pages through registered users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userService.List(p.Page, p.Limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return response.ServerError(c, "Failed to fetch users")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, users))
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.userService.Delete(uint(id)); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return response.ServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted", nil)
}

// EmploymentStatuses exposes the accepted employment values for admin forms.
func (h *AdminHandler) EmploymentStatuses(c *fiber.Ctx) error {
	return response.Success(c, "Employment statuses", validation.EmploymentStatuses())
}
