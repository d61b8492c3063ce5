package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bimta/bimta-api/internal/models"
)

const referenceColumns = "nim_mahasiswa, nama_mahasiswa, judul, topik, tahun, doc_url, created_at, updated_at"

// ReferenceRepository handles reference document metadata persistence.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository constructs the repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// List returns references applying the filter, newest first.
func (r *ReferenceRepository) List(ctx context.Context, filter models.ReferenceFilter) ([]models.ReferenceDocument, error) {
	q := newQuery("SELECT " + referenceColumns + " FROM referensi_ta")
	if filter.Search != "" {
		p := q.Bind(likePattern(filter.Search))
		q.Where(fmt.Sprintf("(judul ILIKE %[1]s OR nama_mahasiswa ILIKE %[1]s OR nim_mahasiswa ILIKE %[1]s OR topik ILIKE %[1]s)", p))
	}
	if filter.Tahun != nil {
		q.WhereBound("tahun = %s", *filter.Tahun)
	}
	if filter.Topik != "" {
		q.WhereBound("topik ILIKE %s", likePattern(filter.Topik))
	}
	q.Append("ORDER BY created_at DESC")

	items := make([]models.ReferenceDocument, 0)
	if err := r.db.SelectContext(ctx, &items, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return items, nil
}

// FindByNIM retrieves one reference.
func (r *ReferenceRepository) FindByNIM(ctx context.Context, nim string) (*models.ReferenceDocument, error) {
	query := "SELECT " + referenceColumns + " FROM referensi_ta WHERE nim_mahasiswa = $1"
	var item models.ReferenceDocument
	if err := r.db.GetContext(ctx, &item, query, nim); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find reference: %w", err)
	}
	return &item, nil
}

// Create stores a new reference.
func (r *ReferenceRepository) Create(ctx context.Context, item *models.ReferenceDocument) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	const query = `INSERT INTO referensi_ta (nim_mahasiswa, nama_mahasiswa, judul, topik, tahun, doc_url, created_at, updated_at)
	VALUES (:nim_mahasiswa, :nama_mahasiswa, :judul, :topik, :tahun, :doc_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create reference: %w", err)
	}
	return nil
}

// Update rewrites every mutable column of the reference.
func (r *ReferenceRepository) Update(ctx context.Context, item *models.ReferenceDocument) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE referensi_ta SET nama_mahasiswa = :nama_mahasiswa, judul = :judul, topik = :topik, tahun = :tahun, doc_url = :doc_url, updated_at = :updated_at
	WHERE nim_mahasiswa = :nim_mahasiswa`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update reference: %w", err)
	}
	return expectAffected(res)
}

// Delete removes the reference row.
func (r *ReferenceRepository) Delete(ctx context.Context, nim string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM referensi_ta WHERE nim_mahasiswa = $1`, nim)
	if err != nil {
		return fmt.Errorf("delete reference: %w", err)
	}
	return expectAffected(res)
}

// Count returns the number of catalogued references.
func (r *ReferenceRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM referensi_ta`); err != nil {
		return 0, fmt.Errorf("count references: %w", err)
	}
	return total, nil
}

// Years lists distinct publication years, latest first.
func (r *ReferenceRepository) Years(ctx context.Context) ([]int, error) {
	years := make([]int, 0)
	if err := r.db.SelectContext(ctx, &years, `SELECT DISTINCT tahun FROM referensi_ta ORDER BY tahun DESC`); err != nil {
		return nil, fmt.Errorf("list reference years: %w", err)
	}
	return years, nil
}

// Topics lists distinct topics alphabetically.
func (r *ReferenceRepository) Topics(ctx context.Context) ([]string, error) {
	topics := make([]string, 0)
	if err := r.db.SelectContext(ctx, &topics, `SELECT DISTINCT topik FROM referensi_ta ORDER BY topik ASC`); err != nil {
		return nil, fmt.Errorf("list reference topics: %w", err)
	}
	return topics, nil
}
