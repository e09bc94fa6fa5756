package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"veriloan/internal/services/documents"
	"veriloan/internal/services/registry"
	"veriloan/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler serves reference document blobs from the registry for
// admin review screens.
type DocumentHandler struct {
	registryService registry.Service
}

func NewDocumentHandler(registryService registry.Service) *DocumentHandler {
	return &DocumentHandler{registryService: registryService}
}

// Download streams one reference document. Kind is identity, tax or income.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	kind := documents.Kind(strings.ToLower(c.Params("kind")))
	if email == "" || !documents.ValidKind(kind) {
		return response.BadRequest(c, "Unknown document kind")
	}

	blob, err := h.registryService.Document(c.Context(), email, kind)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNotFound):
			return response.NotFound(c, "Verified applicant not found")
		case errors.Is(err, registry.ErrDocumentNotFound):
			return response.NotFound(c, "Document not found")
		default:
			return response.ServerError(c, "Failed to fetch document")
		}
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(blob))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", string(kind)+"_doc"))
	return c.Send(blob)
}
