package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/domain"
)

// domainError maps usecase sentinels to HTTP responses. Anything unknown is
// an infrastructure fault and stays opaque to the caller.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidCapacity):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrInvalidCapacity.Error()})
	case errors.Is(err, domain.ErrCapacityExceeded):
		return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrCapacityExceeded.Error()})
	case errors.Is(err, domain.ErrExitLimitExceeded):
		return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrExitLimitExceeded.Error()})
	case errors.Is(err, domain.ErrCreatorMustTransferOrClose):
		return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrCreatorMustTransferOrClose.Error()})
	case errors.Is(err, domain.ErrNotMember):
		return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrNotMember.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
