package memory

import (
	"context"
	"slices"

	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type reportRepo struct {
	store *Store
}

func NewReportRepo(store *Store) repository.ReportRepository {
	return &reportRepo{store: store}
}

func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	rep := *report
	r.store.reports = append(r.store.reports, &rep)

	return nil
}

func (r *reportRepo) List(ctx context.Context) ([]*models.Report, error) {
	return slices.Clone(r.store.reports), nil
}
