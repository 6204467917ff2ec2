package reports

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airops/internal/database"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/repository"
)

type Cache interface {
	GetReport(ctx context.Context, name string, args []string) (*database.Result, error)
	SetReport(ctx context.Context, name string, args []string, res *database.Result) error
	InvalidateReports(ctx context.Context) error
}

type ReportUseCase interface {
	Run(ctx context.Context, report Report, inputs []string) (*database.Result, error)
}

type ReportService struct {
	reports repository.ReportRepository
	cache   Cache
}

// NewReportService builds the service; cache may be nil.
func NewReportService(reports repository.ReportRepository, cache Cache) *ReportService {
	return &ReportService{reports: reports, cache: cache}
}

// Run validates inputs against the report's fields and executes its
// statement. A failing cache is logged and bypassed.
func (s *ReportService) Run(ctx context.Context, report Report, inputs []string) (*database.Result, error) {
	if len(inputs) != len(report.Fields) {
		return nil, fmt.Errorf("report %s takes %d inputs, got %d", report.Name, len(report.Fields), len(inputs))
	}

	args := make([]string, len(inputs))
	for i, f := range report.Fields {
		arg, err := f.Arg(inputs[i])
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	if s.cache != nil {
		res, err := s.cache.GetReport(ctx, report.Name, args)
		if err != nil {
			logger.Warn().Err(err).Str("report", report.Name).Msg("report cache read failed")
		} else if res != nil {
			logger.Debug().Str("report", report.Name).Msg("report cache hit")
			return res, nil
		}
	}

	bind := make([]any, len(args))
	for i, a := range args {
		bind[i] = a
	}
	res, err := s.reports.Run(ctx, report.Statement, bind...)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, report.Name, args, res); err != nil {
			logger.Warn().Err(err).Str("report", report.Name).Msg("report cache write failed")
		}
	}
	return res, nil
}

// Invalidate drops cached reports after a mutation.
func Invalidate(ctx context.Context, cache Cache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateReports(ctx); err != nil {
		logger.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

var _ ReportUseCase = (*ReportService)(nil)
