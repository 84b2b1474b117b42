package input

import (
	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain/models"
)

type CreateReportInput struct {
	ReporterID     uuid.UUID         `json:"reporter_id"`
	ReportedUserID uuid.UUID         `json:"reported_user_id"`
	RoomID         *uuid.UUID        `json:"room_id"`
	ReportType     models.ReportType `json:"report_type"`
	Content        string            `json:"content"`
}
