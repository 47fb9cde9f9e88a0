package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poopticket/citation-service/internal/api/dto"
	"github.com/poopticket/citation-service/internal/service"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// CitationsHandler exposes the public citation lookup.
type CitationsHandler struct {
	citations *service.CitationService
}

// NewCitationsHandler constructs handler.
func NewCitationsHandler(citationService *service.CitationService) *CitationsHandler {
	return &CitationsHandler{citations: citationService}
}

// Search handles POST /citations/search. The caller is keyed by client
// address; repeated attempts within the window are throttled by the
// service.
func (h *CitationsHandler) Search(c *fiber.Ctx) error {
	var req dto.CitationSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.citations.Search(c.Context(), c.IP(), req.CitationID, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": citationDetailResponse(result)})
}
