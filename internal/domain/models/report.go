package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportManner    ReportType = "manner_review"
	ReportComplaint ReportType = "report"
)

type Report struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ReporterID     uuid.UUID  `json:"reporter_id" db:"reporter_id"`
	ReportedUserID uuid.UUID  `json:"reported_user_id" db:"reported_user_id"`
	RoomID         *uuid.UUID `json:"room_id,omitempty" db:"room_id"`
	ReportType     ReportType `json:"report_type" db:"report_type"`
	Content        string     `json:"content" db:"content"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

func NewReport(reporterID, reportedUserID uuid.UUID, roomID *uuid.UUID, reportType ReportType, content string) *Report {
	return &Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		RoomID:         roomID,
		ReportType:     reportType,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}
