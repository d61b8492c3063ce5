package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/export"
)

type fakeReportRepo struct {
	monthly    []models.MonthlyReportRow
	semester   []models.SemesterReportRow
	stats      *models.ReportStatistics
	breakdown  []models.StatusBreakdown
	err        error
	lastFilter models.ReportFilter
	lastRange  *models.DateRange
	calls      int
}

func (f *fakeReportRepo) Monthly(_ context.Context, filter models.ReportFilter) ([]models.MonthlyReportRow, error) {
	f.calls++
	f.lastFilter = filter
	return f.monthly, f.err
}

func (f *fakeReportRepo) Semester(_ context.Context, filter models.ReportFilter) ([]models.SemesterReportRow, error) {
	f.calls++
	f.lastFilter = filter
	return f.semester, f.err
}

func (f *fakeReportRepo) Statistics(_ context.Context, rng *models.DateRange) (*models.ReportStatistics, error) {
	f.lastRange = rng
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeReportRepo) StatusBreakdown(context.Context) ([]models.StatusBreakdown, error) {
	return f.breakdown, f.err
}

func TestReportServiceValidation(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, nil, nil, nil)

	cases := []struct {
		name    string
		query   dto.ReportQuery
		message string
	}{
		{"missing kind", dto.ReportQuery{}, "Jenis laporan harus dipilih"},
		{"unknown kind", dto.ReportQuery{JenisLaporan: "tahunan"}, "Jenis laporan tidak valid"},
		{"bad date", dto.ReportQuery{JenisLaporan: "bulanan", StartDate: "01-02-2024", EndDate: "2024-02-28"}, "Format tanggal harus YYYY-MM-DD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tc.query)
			appErr := appErrors.FromError(err)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
	assert.Zero(t, repo.calls)
}

func TestReportServiceMonthly(t *testing.T) {
	repo := &fakeReportRepo{monthly: []models.MonthlyReportRow{{BimbinganID: 1}, {BimbinganID: 2}}}
	svc := NewReportService(repo, nil, nil, nil)

	res, err := svc.Generate(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan", StartDate: "2024-01-01", EndDate: "2024-01-31", ProgramStudi: "IT"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportMonthly, res.JenisLaporan)
	assert.Equal(t, 2, res.TotalRecords)
	require.NotNil(t, res.Periode.StartDate)
	assert.Equal(t, "2024-01-01", *res.Periode.StartDate)
	assert.Equal(t, &models.DateRange{Start: "2024-01-01", End: "2024-01-31"}, repo.lastFilter.Range)
	assert.Empty(t, repo.lastFilter.ProgramStudi)
}

func TestReportServiceSemesterHalfRangeIgnored(t *testing.T) {
	repo := &fakeReportRepo{semester: []models.SemesterReportRow{{DosenID: "IT001"}}}
	svc := NewReportService(repo, nil, nil, nil)

	res, err := svc.Generate(context.Background(), dto.ReportQuery{JenisLaporan: "semester", StartDate: "2024-01-01", ProgramStudi: "IT"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalRecords)
	assert.Nil(t, repo.lastFilter.Range)
	assert.Nil(t, res.Periode.EndDate)
	assert.Equal(t, "IT", repo.lastFilter.ProgramStudi)
}

func TestReportServiceDatabaseError(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{err: errors.New("timeout")}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "Terjadi kesalahan pada server", appErr.Message)
}

func TestReportServiceStatistics(t *testing.T) {
	repo := &fakeReportRepo{
		stats:     &models.ReportStatistics{TotalBimbingan: 4},
		breakdown: []models.StatusBreakdown{{StatusBimbingan: "done", Jumlah: 4}},
	}
	svc := NewReportService(repo, nil, nil, nil)

	res, err := svc.Statistics(context.Background(), dto.ReportQuery{StartDate: "2024-01-01", EndDate: "2024-06-30"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.StatistikUmum.TotalBimbingan)
	assert.Len(t, res.StatusBimbingan, 1)
	assert.Equal(t, "2024-06-30", repo.lastRange.End)
}

type recordingXLSX struct {
	data  export.Dataset
	sheet string
	fill  export.CellFillFunc
}

func (r *recordingXLSX) Render(data export.Dataset, sheet string, fill export.CellFillFunc) ([]byte, error) {
	r.data, r.sheet, r.fill = data, sheet, fill
	return []byte("xlsx"), nil
}

func newExportFixture(repo *fakeReportRepo) (*ExportService, *recordingXLSX) {
	xlsx := &recordingXLSX{}
	svc := NewExportService(repo, nil, nil, nil, xlsx, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc, xlsx
}

func TestExportServiceMonthlyXLSX(t *testing.T) {
	repo := &fakeReportRepo{monthly: []models.MonthlyReportRow{
		{NIM: "2101", NamaMahasiswa: "Ani", NamaDosen: "Dr. Budi", StatusBimbingan: "done", TotalBimbingan: 5, TotalProgress: 3, ProgressSelesai: 2},
	}}
	svc, xlsx := newExportFixture(repo)

	file, err := svc.Export(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan", StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "Laporan_bulanan_2024-07-01.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)

	assert.Equal(t, "Laporan Bulanan", xlsx.sheet)
	assert.Equal(t, "Laporan Bimbingan Bulanan", xlsx.data.Title)
	assert.Equal(t, "Periode: 01/01/2024 - 31/01/2024", xlsx.data.Subtitle)
	assert.Equal(t, export.Row{1, "2101", "Ani", "Dr. Budi", "done", 5, "2/3"}, xlsx.data.Rows[0])
	assert.Equal(t, export.Row{"", "Total Data:", 1}, xlsx.data.Summary)
	require.NotNil(t, xlsx.fill)
	assert.Equal(t, "C6EFCE", xlsx.fill("Status", "done"))
	assert.Equal(t, "BDD7EE", xlsx.fill("Status", "ongoing"))
	assert.Empty(t, xlsx.fill("Status", "warning"))
	assert.Empty(t, xlsx.fill("NIM", "done"))
}

func TestExportServiceSemesterAverageOneDecimal(t *testing.T) {
	repo := &fakeReportRepo{semester: []models.SemesterReportRow{
		{NamaDosen: "Dr. Budi", TotalBimbingan: 4, BimbinganSelesai: 1, BimbinganBerlangsung: 3, RataRataPertemuan: models.NewDecimal("3.4560000000000000")},
		{NamaDosen: "Dr. Citra", TotalBimbingan: 1},
	}}
	svc, xlsx := newExportFixture(repo)

	file, err := svc.Export(context.Background(), dto.ReportQuery{JenisLaporan: "semester"})
	require.NoError(t, err)
	assert.Equal(t, "Laporan_semester_2024-07-01.xlsx", file.Filename)
	assert.Equal(t, "Laporan Semester", xlsx.sheet)
	assert.Equal(t, "Periode: Semua Data", xlsx.data.Subtitle)
	assert.Equal(t, "3.5", xlsx.data.Rows[0][5])
	assert.Equal(t, "0.0", xlsx.data.Rows[1][5])
	assert.Nil(t, xlsx.fill)
	assert.Len(t, xlsx.data.Headers, 6)
}

func TestExportServiceEmptyReport(t *testing.T) {
	svc, _ := newExportFixture(&fakeReportRepo{})

	_, err := svc.Export(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Tidak ada data untuk periode yang dipilih", appErr.Message)
}

func TestExportServiceCSVAndUnknownFormat(t *testing.T) {
	repo := &fakeReportRepo{monthly: []models.MonthlyReportRow{{NIM: "2101", StatusBimbingan: "ongoing"}}}
	svc, _ := newExportFixture(repo)

	file, err := svc.Export(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "Laporan_bulanan_2024-07-01.csv", file.Filename)
	assert.Contains(t, string(file.Content), "2101")

	_, err = svc.Export(context.Background(), dto.ReportQuery{JenisLaporan: "bulanan", Format: "docx"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestExportServiceRequiresKind(t *testing.T) {
	repo := &fakeReportRepo{}
	svc, _ := newExportFixture(repo)

	_, err := svc.Export(context.Background(), dto.ReportQuery{})
	assert.Equal(t, "Jenis laporan harus dipilih", appErrors.FromError(err).Message)
	assert.Zero(t, repo.calls)
}
