package dto

import "github.com/bimta/bimta-api/internal/models"

// ReportQuery captures the report query string shared by generate and export.
type ReportQuery struct {
	JenisLaporan string `form:"jenis_laporan"`
	StartDate    string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ProgramStudi string `form:"program_studi"`
	Format       string `form:"format"`
}

// ReportPeriod echoes the requested range.
type ReportPeriod struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// ReportResponse is the payload of the generate endpoint. Laporan holds
// either monthly or semester rows.
type ReportResponse struct {
	JenisLaporan models.ReportKind `json:"jenis_laporan"`
	Periode      ReportPeriod      `json:"periode"`
	TotalRecords int               `json:"total_records"`
	Laporan      interface{}       `json:"laporan"`
}

// StatisticsResponse is the payload of the statistics endpoint.
type StatisticsResponse struct {
	StatistikUmum   models.ReportStatistics  `json:"statistik_umum"`
	StatusBimbingan []models.StatusBreakdown `json:"status_bimbingan"`
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
