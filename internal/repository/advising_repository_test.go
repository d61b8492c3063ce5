package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/models"
)

var sessionRowColumns = []string{"bimbingan_id", "mahasiswa_id", "dosen_id", "nama_mahasiswa", "nama_dosen", "status_bimbingan", "total_bimbingan", "created_at", "updated_at"}

func TestAdvisingListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdvisingRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.status_bimbingan = $1 AND b.dosen_id = $2 ORDER BY b.bimbingan_id")).
		WithArgs(models.SessionOngoing, "IT001").
		WillReturnRows(sqlmock.NewRows(sessionRowColumns).AddRow(1, "2101", "IT001", "Ani", "Dr. Budi", "ongoing", 2, now, now))

	sessions, err := repo.List(context.Background(), models.SessionFilter{Status: models.SessionOngoing, DosenID: "IT001"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Dr. Budi", sessions[0].NamaDosen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisingFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdvisingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.bimbingan_id = $1")).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAdvisingRecentActivity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdvisingRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.datetime DESC\nLIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"datetime", "activity", "mahasiswa_nama", "dosen_nama"}).
			AddRow(now, "Bab 1", "Ani", "Dr. Budi"))

	activities, err := repo.RecentActivity(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Bab 1", activities[0].Activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisingCountByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdvisingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status_bimbingan, COUNT(*) AS total FROM bimbingan GROUP BY status_bimbingan")).
		WillReturnRows(sqlmock.NewRows([]string{"status_bimbingan", "total"}).AddRow("ongoing", 3))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SessionStatusCount{{Status: models.SessionOngoing, Total: 3}}, counts)
}

func TestAdvisingListProgress(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdvisingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM progress WHERE bimbingan_id = $1 ORDER BY datetime DESC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"progress_id", "bimbingan_id", "subject_progress", "description_progress", "status_progress", "datetime"}).
			AddRow(4, 1, "Bab 2", nil, "done", time.Now()))

	entries, err := repo.ListProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Description)
}
