package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bimta/bimta-api/internal/models"
)

const accountColumns = "user_id, nama, no_whatsapp, sandi, role, photo_url, status_user, created_at, updated_at"

// AccountRepository provides database access for the users table.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID returns an account by user id.
func (r *AccountRepository) FindByID(ctx context.Context, userID string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM users WHERE user_id = $1 LIMIT 1"
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// List returns accounts matching the filter, newest first.
func (r *AccountRepository) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	q := newQuery("SELECT " + accountColumns + " FROM users")
	if filter.Role != "" {
		q.WhereBound("role = %s", filter.Role)
	}
	if filter.Status != "" {
		q.WhereBound("status_user = %s", filter.Status)
	}
	if filter.Search != "" {
		pattern := q.Bind(likePattern(filter.Search))
		q.Where(fmt.Sprintf("(nama ILIKE %s OR user_id ILIKE %s)", pattern, pattern))
	}
	q.Append("ORDER BY created_at DESC")

	accounts := make([]models.Account, 0)
	if err := r.db.SelectContext(ctx, &accounts, q.SQL(), q.Args()...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Exists reports whether the user id is taken.
func (r *AccountRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM users WHERE user_id = $1 LIMIT 1", userID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check user id: %w", err)
	}
	return true, nil
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	const query = `INSERT INTO users (user_id, nama, no_whatsapp, sandi, role, photo_url, status_user, created_at, updated_at) VALUES (:user_id, :nama, :no_whatsapp, :sandi, :role, :photo_url, :status_user, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Update writes the mutable profile fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET nama = :nama, no_whatsapp = :no_whatsapp, photo_url = :photo_url, status_user = :status_user, updated_at = :updated_at WHERE user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return expectAffected(res)
}

// UpdatePassword replaces the stored password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE users SET sandi = $2, updated_at = $3 WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return expectAffected(res)
}

// Delete removes the account row.
func (r *AccountRepository) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return expectAffected(res)
}

// CountByRole tallies accounts per role.
func (r *AccountRepository) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	const query = `SELECT role, COUNT(*) AS total FROM users GROUP BY role`
	var counts []models.RoleCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count accounts by role: %w", err)
	}
	return counts, nil
}

// expectAffected maps a write that touched no rows to sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
