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

var referenceRowColumns = []string{"nim_mahasiswa", "nama_mahasiswa", "judul", "topik", "tahun", "doc_url", "created_at", "updated_at"}

func TestReferenceListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(referenceRowColumns).
		AddRow("2101", "Ani", "Sistem Pakar", "AI", 2023, "http://minio/bimta/documents/a.pdf", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM referensi_ta WHERE (judul ILIKE $1 OR nama_mahasiswa ILIKE $1 OR nim_mahasiswa ILIKE $1 OR topik ILIKE $1) AND tahun = $2 AND topik ILIKE $3 ORDER BY created_at DESC")).
		WithArgs("%pakar%", 2023, "%AI%").
		WillReturnRows(rows)

	year := 2023
	items, err := repo.List(context.Background(), models.ReferenceFilter{Search: "pakar", Tahun: &year, Topik: "AI"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2023, items[0].Tahun)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceCreateAndFind(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO referensi_ta")).WillReturnResult(sqlmock.NewResult(1, 1))
	item := &models.ReferenceDocument{NIM: "2101", NamaMahasiswa: "Ani", Judul: "Sistem Pakar", Topik: "AI", Tahun: 2023, DocURL: "u"}
	require.NoError(t, repo.Create(context.Background(), item))

	rows := sqlmock.NewRows(referenceRowColumns).AddRow("2101", "Ani", "Sistem Pakar", "AI", 2023, "u", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM referensi_ta WHERE nim_mahasiswa = $1")).WithArgs("2101").WillReturnRows(rows)

	found, err := repo.FindByNIM(context.Background(), "2101")
	require.NoError(t, err)
	assert.Equal(t, "Sistem Pakar", found.Judul)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceFindMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery("FROM referensi_ta WHERE nim_mahasiswa").WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByNIM(context.Background(), "x")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReferenceUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE referensi_ta SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.ReferenceDocument{NIM: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReferenceOptionsQueries(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT tahun FROM referensi_ta ORDER BY tahun DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"tahun"}).AddRow(2024).AddRow(2022))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT topik FROM referensi_ta ORDER BY topik ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"topik"}).AddRow("AI").AddRow("IoT"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM referensi_ta")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	years, err := repo.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2022}, years)

	topics, err := repo.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "IoT"}, topics)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}
