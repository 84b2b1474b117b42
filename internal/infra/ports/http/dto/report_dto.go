package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	ReportedUserID uuid.UUID  `json:"reported_user_id"`
	RoomID         *uuid.UUID `json:"room_id"`
	ReportType     string     `json:"report_type"`
	Content        string     `json:"content"`
}
