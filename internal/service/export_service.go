package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/export"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
	contentTypePDF  = "application/pdf"

	fillDone    = "C6EFCE"
	fillOngoing = "BDD7EE"
)

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string, fill export.CellFillFunc) ([]byte, error)
}

type tableRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders reports into downloadable files.
type ExportService struct {
	repo      reportRepository
	metrics   *MetricsService
	xlsx      xlsxRenderer
	csv       tableRenderer
	pdf       tableRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the default exporters.
func NewExportService(repo reportRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, xlsx xlsxRenderer, csv, pdf tableRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{repo: repo, metrics: metrics, xlsx: xlsx, csv: csv, pdf: pdf, validator: validate, logger: logger, now: time.Now}
}

// Export re-runs the report and renders it in the requested format.
func (s *ExportService) Export(ctx context.Context, query dto.ReportQuery) (*dto.ExportFile, error) {
	filter, err := parseReportFilter(s.validator, query)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(strings.TrimSpace(query.Format))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Format export tidak valid")
	}

	data, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(data.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Tidak ada data untuk periode yang dipilih")
	}

	var (
		content     []byte
		contentType string
	)
	switch format {
	case "csv":
		content, err = s.csv.Render(data)
		contentType = contentTypeCSV
	case "pdf":
		content, err = s.pdf.Render(data)
		contentType = contentTypePDF
	default:
		var fill export.CellFillFunc
		if filter.Kind == models.ReportMonthly {
			fill = statusFill
		}
		content, err = s.xlsx.Render(data, sheetName(filter.Kind), fill)
		contentType = contentTypeXLSX
	}
	if err != nil {
		return nil, appErrors.Internal(fmt.Errorf("render %s report: %w", format, err))
	}

	s.metrics.RecordExport(string(filter.Kind), format)
	s.logger.Info("report exported", zap.String("jenis_laporan", string(filter.Kind)), zap.String("format", format), zap.Int("rows", len(data.Rows)))
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("Laporan_%s_%s.%s", filter.Kind, s.now().Format("2006-01-02"), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *ExportService) dataset(ctx context.Context, filter models.ReportFilter) (export.Dataset, error) {
	data := export.Dataset{
		Title:    "Laporan Bimbingan " + kindLabel(filter.Kind),
		Subtitle: periodLabel(filter.Range),
	}
	if filter.Kind == models.ReportSemester {
		rows, err := s.repo.Semester(ctx, filter)
		if err != nil {
			return data, appErrors.Internal(err)
		}
		data.Headers = []string{"No", "Dosen Pembimbing", "Total Bimbingan", "Selesai", "Berlangsung", "Rata-rata Pertemuan"}
		data.Widths = []float64{8, 30, 18, 15, 15, 20}
		for i, row := range rows {
			data.Rows = append(data.Rows, export.Row{i + 1, row.NamaDosen, row.TotalBimbingan, row.BimbinganSelesai, row.BimbinganBerlangsung, fmt.Sprintf("%.1f", row.RataRataPertemuan.Float64())})
		}
	} else {
		rows, err := s.repo.Monthly(ctx, filter)
		if err != nil {
			return data, appErrors.Internal(err)
		}
		data.Headers = []string{"No", "NIM", "Nama Mahasiswa", "Dosen Pembimbing", "Status", "Total Bimbingan", "Progress (Selesai/Total)"}
		data.Widths = []float64{8, 15, 25, 25, 15, 18, 25}
		for i, row := range rows {
			data.Rows = append(data.Rows, export.Row{
				i + 1, row.NIM, row.NamaMahasiswa, row.NamaDosen, row.StatusBimbingan, row.TotalBimbingan,
				fmt.Sprintf("%d/%d", row.ProgressSelesai, row.TotalProgress),
			})
		}
	}
	data.Summary = export.Row{"", "Total Data:", len(data.Rows)}
	return data, nil
}

func statusFill(header string, value interface{}) string {
	if header != "Status" {
		return ""
	}
	switch value {
	case string(models.SessionDone):
		return fillDone
	case string(models.SessionOngoing):
		return fillOngoing
	}
	return ""
}

func sheetName(kind models.ReportKind) string {
	return "Laporan " + kindLabel(kind)
}

func kindLabel(kind models.ReportKind) string {
	if kind == models.ReportSemester {
		return "Semester"
	}
	return "Bulanan"
}

func periodLabel(rng *models.DateRange) string {
	if rng == nil {
		return "Periode: Semua Data"
	}
	return fmt.Sprintf("Periode: %s - %s", displayDate(rng.Start), displayDate(rng.End))
}

func displayDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}
