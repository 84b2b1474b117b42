package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]*models.Report, error)
}

type reportRepo struct {
	db *sqlx.DB
}

func NewReportRepo(db *sqlx.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, reported_user_id, room_id, report_type, content)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := postgres.Queryer(ctx, r.db).ExecContext(
		ctx,
		query,
		report.ID,
		report.ReporterID,
		report.ReportedUserID,
		report.RoomID,
		report.ReportType,
		report.Content,
	)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

func (r *reportRepo) List(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report

	query := "SELECT * FROM reports ORDER BY created_at DESC"

	err := sqlx.SelectContext(ctx, postgres.Queryer(ctx, r.db), &reports, query)
	if err != nil {
		return nil, err
	}

	return reports, nil
}
