package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/dto"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

type AdminHandler struct {
	userUsecase   usecase.UserUsecase
	reportUsecase usecase.ReportUsecase
}

func NewAdminHandler(userUsecase usecase.UserUsecase, reportUsecase usecase.ReportUsecase) *AdminHandler {
	return &AdminHandler{
		userUsecase:   userUsecase,
		reportUsecase: reportUsecase,
	}
}

func (h *AdminHandler) ListVerificationsHandler(c echo.Context) error {
	users, err := h.userUsecase.ListPendingVerifications(c.Request().Context())
	if err != nil {
		slog.Error("list pending verifications", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ReviewVerificationHandler(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}

	var req dto.ReviewVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := h.userUsecase.ReviewVerification(c.Request().Context(), userID, req.Approved); err != nil {
		slog.Error("review verification", slog.String(constant.UserID, userID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) ListReportsHandler(c echo.Context) error {
	reports, err := h.reportUsecase.ListReports(c.Request().Context())
	if err != nil {
		slog.Error("list reports", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, reports)
}
