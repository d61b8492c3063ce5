package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	"github.com/bimta/bimta-api/internal/service"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type fakeReportService struct {
	lastQuery dto.ReportQuery
	report    *dto.ReportResponse
	stats     *dto.StatisticsResponse
	file      *dto.ExportFile
	err       error
}

func (f *fakeReportService) Generate(_ context.Context, query dto.ReportQuery) (*dto.ReportResponse, error) {
	f.lastQuery = query
	return f.report, f.err
}

func (f *fakeReportService) Statistics(_ context.Context, query dto.ReportQuery) (*dto.StatisticsResponse, error) {
	f.lastQuery = query
	return f.stats, f.err
}

func (f *fakeReportService) Export(_ context.Context, query dto.ReportQuery) (*dto.ExportFile, error) {
	f.lastQuery = query
	return f.file, f.err
}

func TestReportHandlerGenerateMissingKind(t *testing.T) {
	svc := &fakeReportService{err: appErrors.Clone(appErrors.ErrValidation, "Jenis laporan harus dipilih")}
	h := NewReportHandler(svc, svc)

	c, w := newGinContext(http.MethodGet, "/api/laporan/generate", nil, "")
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Jenis laporan harus dipilih", env.Message)
}

func TestReportHandlerGenerateBindsQuery(t *testing.T) {
	svc := &fakeReportService{report: &dto.ReportResponse{JenisLaporan: models.ReportSemester, Laporan: []models.SemesterReportRow{}}}
	h := NewReportHandler(svc, svc)

	c, w := newGinContext(http.MethodGet, "/api/laporan/generate?jenis_laporan=semester&start_date=2024-01-01&end_date=2024-06-30&program_studi=IT", nil, "")
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ReportQuery{JenisLaporan: "semester", StartDate: "2024-01-01", EndDate: "2024-06-30", ProgramStudi: "IT"}, svc.lastQuery)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"jenis_laporan":"semester"`)
}

func TestReportHandlerStatistics(t *testing.T) {
	svc := &fakeReportService{stats: &dto.StatisticsResponse{StatusBimbingan: []models.StatusBreakdown{}}}
	h := NewReportHandler(svc, svc)

	c, w := newGinContext(http.MethodGet, "/api/laporan/statistik", nil, "")
	h.Statistics(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandlerExportWritesAttachment(t *testing.T) {
	svc := &fakeReportService{file: &dto.ExportFile{
		Filename:    "Laporan_bulanan_2024-07-01.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK\x03\x04"),
	}}
	h := NewReportHandler(svc, svc)

	c, w := newGinContext(http.MethodGet, "/api/laporan/export?jenis_laporan=bulanan", nil, "")
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Laporan_bulanan_2024-07-01.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, []byte("PK\x03\x04"), w.Body.Bytes())
}

func TestReportHandlerExportNoData(t *testing.T) {
	svc := &fakeReportService{err: appErrors.Clone(appErrors.ErrNotFound, "Tidak ada data untuk periode yang dipilih")}
	h := NewReportHandler(svc, svc)

	c, w := newGinContext(http.MethodGet, "/api/laporan/export?jenis_laporan=bulanan", nil, "")
	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

type fakeDashboardService struct {
	resp *dto.DashboardResponse
	err  error
}

func (f *fakeDashboardService) Summary(context.Context) (*dto.DashboardResponse, error) {
	return f.resp, f.err
}

func TestDashboardHandlerSummary(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardService{resp: &dto.DashboardResponse{
		Statistics: dto.DashboardStatistics{TotalMahasiswa: 12},
	}})

	c, w := newGinContext(http.MethodGet, "/api/dashboard", nil, "")
	h.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"totalMahasiswa":12`)
}

func TestDashboardHandlerSummaryFailure(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardService{err: appErrors.Internal(assert.AnError)})

	c, w := newGinContext(http.MethodGet, "/api/dashboard", nil, "")
	h.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Terjadi kesalahan pada server", decodeEnvelope(t, w).Message)
}

type fakeAdvisingService struct {
	lastQuery dto.SessionQuery
	lastID    string
	err       error
}

func (f *fakeAdvisingService) List(_ context.Context, query dto.SessionQuery) ([]models.AdvisingSession, error) {
	f.lastQuery = query
	return []models.AdvisingSession{{BimbinganID: 1}}, f.err
}

func (f *fakeAdvisingService) Get(_ context.Context, rawID string) (*models.SessionDetail, error) {
	f.lastID = rawID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionDetail{Progress: []models.ProgressEntry{}}, nil
}

func TestAdvisingHandlerList(t *testing.T) {
	svc := &fakeAdvisingService{}
	h := NewAdvisingHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/bimbingan?status_bimbingan=ongoing&dosen_id=IT001", nil, "")
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ongoing", svc.lastQuery.Status)
	assert.Equal(t, "IT001", svc.lastQuery.DosenID)
}

func TestAdvisingHandlerGetNotFound(t *testing.T) {
	svc := &fakeAdvisingService{err: appErrors.Clone(appErrors.ErrNotFound, "Bimbingan tidak ditemukan")}
	h := NewAdvisingHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/bimbingan/abc", nil, "")
	c.Params = gin.Params{{Key: "bimbinganId", Value: "abc"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "abc", svc.lastID)
}

func TestMetricsHandlerHealth(t *testing.T) {
	h := NewMetricsHandler(nil)
	h.now = func() time.Time { return time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC) }

	c, w := newGinContext(http.MethodGet, "/api/health", nil, "")
	h.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Server is running","timestamp":"2024-07-01T09:30:00.000Z"}`, w.Body.String())
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordLogin(service.LoginFailed)
	h := NewMetricsHandler(metrics)

	c, w := newGinContext(http.MethodGet, "/metrics", nil, "")
	h.Prometheus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `login_attempts_total{outcome="failed"} 1`)
}
