package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/poopticket/citation-service/internal/api/dto"
	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/service"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// AdminDirectoryHandler manages the user and property endpoints plus
// the dashboard figures.
type AdminDirectoryHandler struct {
	directory *service.DirectoryService
}

// NewAdminDirectoryHandler constructs handler.
func NewAdminDirectoryHandler(directoryService *service.DirectoryService) *AdminDirectoryHandler {
	return &AdminDirectoryHandler{directory: directoryService}
}

// Overview handles GET /admin/summary.
func (h *AdminDirectoryHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.directory.BuildOverview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OverviewResponse{
		TotalRevenue:  money(overview.TotalRevenue),
		CitationCount: overview.CitationCount,
		PropertyCount: overview.PropertyCount,
	}})
}

// ListUsers handles GET /admin/users.
func (h *AdminDirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUser handles POST /admin/users.
func (h *AdminDirectoryHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.CreateUser(c.Context(), service.UserCreateInput{
		Email:              req.Email,
		Password:           req.Password,
		Role:               domain.Role(req.Role),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		AssignedProperties: req.AssignedProperties,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// AssignProperties handles PUT /admin/users/:id/properties.
func (h *AdminDirectoryHandler) AssignProperties(c *fiber.Ctx) error {
	var req dto.AssignPropertiesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.AssignProperties(c.Context(), c.Params("id"), req.PropertyIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// RequestPasswordReset handles POST /admin/users/:id/password-reset.
func (h *AdminDirectoryHandler) RequestPasswordReset(c *fiber.Ctx) error {
	if err := h.directory.RequestPasswordReset(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// ListProperties handles GET /admin/properties.
func (h *AdminDirectoryHandler) ListProperties(c *fiber.Ctx) error {
	summaries, err := h.directory.PropertySummaries(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PropertySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, propertySummaryResponse(summary))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateProperty handles POST /admin/properties.
func (h *AdminDirectoryHandler) CreateProperty(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.directory.CreateProperty(c.Context(), req.Name, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":   property.ID,
		"name": property.Name,
	}})
}
