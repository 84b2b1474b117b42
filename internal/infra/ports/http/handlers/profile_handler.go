package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

func (h *ProfileHandler) GetProfileHandler(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	profile, err := h.profileUsecase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertProfileHandler(c echo.Context) error {
	var req input.UpsertProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Nickname == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nickname is required"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	req.UserID = userID

	profile, err := h.profileUsecase.UpsertProfile(c.Request().Context(), &req)
	if err != nil {
		slog.Error("upsert profile", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetPreferenceHandler(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	pref, err := h.profileUsecase.GetPreference(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, pref)
}

func (h *ProfileHandler) UpsertPreferenceHandler(c echo.Context) error {
	var req input.UpsertPreferenceInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	req.UserID = userID

	pref, err := h.profileUsecase.UpsertPreference(c.Request().Context(), &req)
	if err != nil {
		slog.Error("upsert preference", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, pref)
}
