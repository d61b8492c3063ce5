package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bimta/bimta-api/internal/models"
)

const sessionSelect = `SELECT b.bimbingan_id, b.mahasiswa_id, b.dosen_id, m.nama AS nama_mahasiswa, d.nama AS nama_dosen,
       b.status_bimbingan, b.total_bimbingan, b.created_at, b.updated_at
FROM bimbingan b
JOIN users d ON b.dosen_id = d.user_id
JOIN users m ON b.mahasiswa_id = m.user_id`

// AdvisingRepository reads advising sessions and their progress entries.
type AdvisingRepository struct {
	db *sqlx.DB
}

// NewAdvisingRepository constructs the repository.
func NewAdvisingRepository(db *sqlx.DB) *AdvisingRepository {
	return &AdvisingRepository{db: db}
}

// List returns sessions joined to the names involved, ordered by id.
func (r *AdvisingRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.AdvisingSession, error) {
	q := newQuery(sessionSelect)
	if filter.Status != "" {
		q.WhereBound("b.status_bimbingan = %s", filter.Status)
	}
	if filter.DosenID != "" {
		q.WhereBound("b.dosen_id = %s", filter.DosenID)
	}
	if filter.MahasiswaID != "" {
		q.WhereBound("b.mahasiswa_id = %s", filter.MahasiswaID)
	}
	q.Append("ORDER BY b.bimbingan_id")

	sessions := make([]models.AdvisingSession, 0)
	if err := r.db.SelectContext(ctx, &sessions, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns one session.
func (r *AdvisingRepository) FindByID(ctx context.Context, id int64) (*models.AdvisingSession, error) {
	var session models.AdvisingSession
	if err := r.db.GetContext(ctx, &session, sessionSelect+" WHERE b.bimbingan_id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

// ListProgress returns the progress entries of a session, newest first.
func (r *AdvisingRepository) ListProgress(ctx context.Context, bimbinganID int64) ([]models.ProgressEntry, error) {
	const query = `SELECT progress_id, bimbingan_id, subject_progress, description_progress, status_progress, datetime
FROM progress WHERE bimbingan_id = $1 ORDER BY datetime DESC`
	entries := make([]models.ProgressEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, bimbinganID); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return entries, nil
}

// CountByStatus tallies sessions per status. Statuses without sessions are
// absent from the result.
func (r *AdvisingRepository) CountByStatus(ctx context.Context) ([]models.SessionStatusCount, error) {
	const query = `SELECT status_bimbingan, COUNT(*) AS total FROM bimbingan GROUP BY status_bimbingan`
	var counts []models.SessionStatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count sessions by status: %w", err)
	}
	return counts, nil
}

// RecentActivity returns the latest progress entries with student and
// advisor names.
func (r *AdvisingRepository) RecentActivity(ctx context.Context, limit int) ([]models.RecentActivity, error) {
	const query = `SELECT p.datetime, p.subject_progress AS activity, m.nama AS mahasiswa_nama, d.nama AS dosen_nama
FROM progress p
JOIN bimbingan b ON p.bimbingan_id = b.bimbingan_id
JOIN users m ON b.mahasiswa_id = m.user_id
JOIN users d ON b.dosen_id = d.user_id
ORDER BY p.datetime DESC
LIMIT $1`
	activities := make([]models.RecentActivity, 0, limit)
	if err := r.db.SelectContext(ctx, &activities, query, limit); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return activities, nil
}
