package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poopticket/citation-service/internal/api/dto"
	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/service"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// AdminCitationsHandler manages citation endpoints for admins and
// managers.
type AdminCitationsHandler struct {
	citations *service.CitationService
}

// NewAdminCitationsHandler constructs handler.
func NewAdminCitationsHandler(citationService *service.CitationService) *AdminCitationsHandler {
	return &AdminCitationsHandler{citations: citationService}
}

// List handles GET /admin/citations. Super admins see every citation,
// managers only their assigned properties. Optional status and q query
// parameters narrow the listing.
func (h *AdminCitationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.ListFilter{SearchTerm: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		status := domain.CitationStatus(raw)
		if !domain.ValidCitationStatus(status) {
			return apperrors.NewValidationError("unknown citation status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}

	citations, err := h.citations.ListForUser(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}

	items := make([]dto.CitationResponse, 0, len(citations))
	for i := range citations {
		items = append(items, citationResponse(&citations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /admin/citations.
func (h *AdminCitationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.CitationCreateInput{
		ID:             req.CitationID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Amount:         req.Amount,
		Status:         domain.CitationStatus(req.Status),
		Violation:      req.Violation,
		Location:       req.Location,
		PetDescription: req.PetDescription,
		PropertyID:     req.PropertyID,
	}
	if req.Date != "" {
		issued, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return apperrors.NewValidationError("date must be RFC3339", nil)
		}
		input.Date = issued
	}

	citation, err := h.citations.Issue(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": citationResponse(citation)})
}
