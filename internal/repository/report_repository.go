package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bimta/bimta-api/internal/models"
)

// ReportRepository runs the canned advising aggregations.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// progressSummary renders a per-session progress tally restricted to the
// date range. It must be rendered before any other fragment binds values so
// the range occupies $1 and $2.
func progressSummary(q *query, rng *models.DateRange) string {
	where := ""
	if rng != nil {
		where = fmt.Sprintf(" WHERE datetime::date BETWEEN %s AND %s", q.Bind(rng.Start), q.Bind(rng.End))
	}
	return `LEFT JOIN (SELECT bimbingan_id, COUNT(*) AS total_progress,
       COUNT(*) FILTER (WHERE status_progress = 'done') AS progress_selesai,
       COUNT(*) FILTER (WHERE status_progress = 'need_revision') AS progress_revisi
    FROM progress` + where + ` GROUP BY bimbingan_id) p ON p.bimbingan_id = b.bimbingan_id`
}

func monthlyQuery(filter models.ReportFilter) *query {
	q := newQuery("")
	summary := progressSummary(q, filter.Range)
	q.base = `SELECT b.bimbingan_id, m.user_id AS nim, m.nama AS nama_mahasiswa, d.nama AS nama_dosen,
       b.status_bimbingan, b.total_bimbingan,
       COALESCE(p.total_progress, 0) AS total_progress,
       COALESCE(p.progress_selesai, 0) AS progress_selesai,
       COALESCE(p.progress_revisi, 0) AS progress_revisi
FROM bimbingan b
JOIN users m ON b.mahasiswa_id = m.user_id
JOIN users d ON b.dosen_id = d.user_id
` + summary
	q.Append("ORDER BY b.bimbingan_id")
	return q
}

func semesterQuery(filter models.ReportFilter) *query {
	q := newQuery("")
	summary := progressSummary(q, filter.Range)
	q.base = `SELECT d.user_id AS dosen_id, d.nama AS nama_dosen,
       COUNT(b.bimbingan_id) AS total_bimbingan,
       COUNT(*) FILTER (WHERE b.status_bimbingan = 'done') AS bimbingan_selesai,
       COUNT(*) FILTER (WHERE b.status_bimbingan = 'ongoing') AS bimbingan_berlangsung,
       AVG(b.total_bimbingan) AS rata_rata_pertemuan,
       COALESCE(SUM(p.total_progress), 0) AS total_progress
FROM bimbingan b
JOIN users d ON b.dosen_id = d.user_id
` + summary
	if filter.ProgramStudi != "" {
		q.WhereBound("d.user_id ILIKE %s", likePattern(filter.ProgramStudi))
	}
	q.Append("GROUP BY d.user_id, d.nama")
	q.Append("ORDER BY total_bimbingan DESC, d.nama")
	return q
}

func statisticsQuery(rng *models.DateRange) *query {
	q := newQuery("")
	summary := progressSummary(q, rng)
	q.base = `SELECT COUNT(b.bimbingan_id) AS total_bimbingan,
       COUNT(DISTINCT b.mahasiswa_id) AS total_mahasiswa_bimbingan,
       COUNT(DISTINCT b.dosen_id) AS total_dosen_pembimbing,
       COALESCE(SUM(p.total_progress), 0) AS total_progress,
       AVG(b.total_bimbingan) AS rata_rata_pertemuan
FROM bimbingan b
` + summary
	return q
}

// Monthly returns one row per advising session.
func (r *ReportRepository) Monthly(ctx context.Context, filter models.ReportFilter) ([]models.MonthlyReportRow, error) {
	q := monthlyQuery(filter)
	rows := make([]models.MonthlyReportRow, 0)
	if err := r.db.SelectContext(ctx, &rows, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	return rows, nil
}

// Semester returns one row per advisor.
func (r *ReportRepository) Semester(ctx context.Context, filter models.ReportFilter) ([]models.SemesterReportRow, error) {
	q := semesterQuery(filter)
	rows := make([]models.SemesterReportRow, 0)
	if err := r.db.SelectContext(ctx, &rows, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("semester report: %w", err)
	}
	return rows, nil
}

// Statistics returns the overall advising counters.
func (r *ReportRepository) Statistics(ctx context.Context, rng *models.DateRange) (*models.ReportStatistics, error) {
	q := statisticsQuery(rng)
	var stats models.ReportStatistics
	if err := r.db.GetContext(ctx, &stats, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("report statistics: %w", err)
	}
	return &stats, nil
}

// StatusBreakdown counts sessions per status.
func (r *ReportRepository) StatusBreakdown(ctx context.Context) ([]models.StatusBreakdown, error) {
	const query = `SELECT status_bimbingan, COUNT(*) AS jumlah FROM bimbingan GROUP BY status_bimbingan ORDER BY status_bimbingan`
	rows := make([]models.StatusBreakdown, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	return rows, nil
}
