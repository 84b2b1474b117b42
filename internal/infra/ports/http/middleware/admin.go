package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
)

// AdminOnly rejects requests from users without the admin role. Must run
// after JWTAuthMiddleware.
func AdminOnly(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := appctx.UserID(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
			}

			user, err := userRepo.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
			}

			if user.Role != models.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin only"})
			}

			return next(c)
		}
	}
}
