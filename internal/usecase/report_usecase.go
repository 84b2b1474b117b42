package usecase

import (
	"context"
	"fmt"

	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type ReportUsecase interface {
	CreateReport(ctx context.Context, in *input.CreateReportInput) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
}

type reportUsecase struct {
	txm        repository.TxManager
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
}

func NewReportUsecase(
	txm repository.TxManager,
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
) ReportUsecase {
	return &reportUsecase{
		txm:        txm,
		userRepo:   userRepo,
		reportRepo: reportRepo,
	}
}

func (uc *reportUsecase) CreateReport(ctx context.Context, in *input.CreateReportInput) (*models.Report, error) {
	report := models.NewReport(in.ReporterID, in.ReportedUserID, in.RoomID, in.ReportType, in.Content)

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepo.GetUserByID(ctx, in.ReportedUserID); err != nil {
			return fmt.Errorf("get reported user: %w", err)
		}

		return uc.reportRepo.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (uc *reportUsecase) ListReports(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		reports, err = uc.reportRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}
