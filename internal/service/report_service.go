package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type reportRepository interface {
	Monthly(ctx context.Context, filter models.ReportFilter) ([]models.MonthlyReportRow, error)
	Semester(ctx context.Context, filter models.ReportFilter) ([]models.SemesterReportRow, error)
	Statistics(ctx context.Context, rng *models.DateRange) (*models.ReportStatistics, error)
	StatusBreakdown(ctx context.Context) ([]models.StatusBreakdown, error)
}

// ReportService generates advising reports as JSON payloads.
type ReportService struct {
	repo      reportRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a report service.
func NewReportService(repo reportRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Generate runs the selected report.
func (s *ReportService) Generate(ctx context.Context, query dto.ReportQuery) (*dto.ReportResponse, error) {
	filter, err := parseReportFilter(s.validator, query)
	if err != nil {
		return nil, err
	}
	rows, count, err := runReport(ctx, s.repo, s.metrics, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		JenisLaporan: filter.Kind,
		Periode:      period(query),
		TotalRecords: count,
		Laporan:      rows,
	}, nil
}

// Statistics returns the overall counters and the status breakdown.
func (s *ReportService) Statistics(ctx context.Context, query dto.ReportQuery) (*dto.StatisticsResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Format tanggal harus YYYY-MM-DD")
	}
	start := time.Now()
	stats, err := s.repo.Statistics(ctx, dateRange(query))
	s.metrics.ObserveDBQuery("report_statistics", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	breakdown, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return &dto.StatisticsResponse{StatistikUmum: *stats, StatusBimbingan: breakdown}, nil
}

func parseReportFilter(validate *validator.Validate, query dto.ReportQuery) (models.ReportFilter, error) {
	kind := models.ReportKind(query.JenisLaporan)
	switch kind {
	case "":
		return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "Jenis laporan harus dipilih")
	case models.ReportMonthly, models.ReportSemester:
	default:
		return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "Jenis laporan tidak valid")
	}
	if err := validate.Struct(query); err != nil {
		return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "Format tanggal harus YYYY-MM-DD")
	}
	filter := models.ReportFilter{Kind: kind, Range: dateRange(query)}
	if kind == models.ReportSemester {
		filter.ProgramStudi = query.ProgramStudi
	}
	return filter, nil
}

// dateRange is set only when both bounds are present.
func dateRange(query dto.ReportQuery) *models.DateRange {
	if query.StartDate == "" || query.EndDate == "" {
		return nil
	}
	return &models.DateRange{Start: query.StartDate, End: query.EndDate}
}

func period(query dto.ReportQuery) dto.ReportPeriod {
	var p dto.ReportPeriod
	if query.StartDate != "" {
		start := query.StartDate
		p.StartDate = &start
	}
	if query.EndDate != "" {
		end := query.EndDate
		p.EndDate = &end
	}
	return p
}

// runReport returns the rows of the selected kind together with their count.
func runReport(ctx context.Context, repo reportRepository, metrics *MetricsService, filter models.ReportFilter) (interface{}, int, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveDBQuery("report_"+string(filter.Kind), time.Since(start))
	}()
	if filter.Kind == models.ReportSemester {
		rows, err := repo.Semester(ctx, filter)
		if err != nil {
			return nil, 0, appErrors.Internal(err)
		}
		return rows, len(rows), nil
	}
	rows, err := repo.Monthly(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Internal(err)
	}
	return rows, len(rows), nil
}
