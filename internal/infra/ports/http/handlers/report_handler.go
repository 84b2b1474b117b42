package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/dto"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) CreateReportHandler(c echo.Context) error {
	var req dto.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	reportType := models.ReportType(req.ReportType)
	if reportType != models.ReportManner && reportType != models.ReportComplaint {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid report type"})
	}

	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	report, err := h.reportUsecase.CreateReport(c.Request().Context(), &input.CreateReportInput{
		ReporterID:     userID,
		ReportedUserID: req.ReportedUserID,
		RoomID:         req.RoomID,
		ReportType:     reportType,
		Content:        req.Content,
	})
	if err != nil {
		slog.Error("create report", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, report)
}
