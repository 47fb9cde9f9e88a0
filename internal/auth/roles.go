package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poopticket/citation-service/internal/domain"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// RequireRole ensures the principal carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdminAccess admits super admins and managers, the two roles
// that may enter the dashboard.
func RequireAdminAccess() fiber.Handler {
	return RequireRole(domain.RoleSuperAdmin, domain.RoleManager)
}
