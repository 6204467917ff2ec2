package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airops/internal/database"
)

type ReportRepository interface {
	Run(ctx context.Context, stmt string, args ...any) (*database.Result, error)
}

type PGReportRepository struct {
	db database.Querier
}

func NewReportRepository(db database.Querier) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) Run(ctx context.Context, stmt string, args ...any) (*database.Result, error) {
	res, err := database.QueryRows(ctx, r.db, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report: %w", err)
	}
	return res, nil
}

var _ ReportRepository = (*PGReportRepository)(nil)
