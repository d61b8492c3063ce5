package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Internal wraps an unexpected failure as a generic server error. The cause is
// kept for logging and never serialised.
func Internal(err error) *Error {
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "User ID atau password salah")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "Akun Anda sedang tidak aktif")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "Data tidak ditemukan")
	ErrRouteNotFound      = New("ROUTE_NOT_FOUND", http.StatusNotFound, "Endpoint tidak ditemukan")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "Akses ditolak. Hanya admin yang diizinkan")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Token tidak ditemukan")
	ErrDuplicate          = New("DUPLICATE", http.StatusBadRequest, "Data sudah ada (duplikat)")
	ErrForeignKey         = New("FOREIGN_KEY", http.StatusBadRequest, "Data yang direferensikan tidak ditemukan")
	ErrFileTooLarge       = New("FILE_TOO_LARGE", http.StatusBadRequest, "Ukuran file terlalu besar")
	ErrTooManyRequests    = New("TOO_MANY_REQUESTS", http.StatusTooManyRequests, "Terlalu banyak percobaan login, coba lagi nanti")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "Data tidak valid")
	ErrUpstream           = New("UPSTREAM_ERROR", http.StatusInternalServerError, "Gagal menghubungi layanan penyimpanan")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "Terjadi kesalahan pada server")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromError normalises any error into an *Error. Client errors pass through
// untouched. Internal errors are inspected for known constraint violations and
// oversized request bodies before falling back to a generic internal error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.Status < http.StatusInternalServerError {
		return e
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return Wrap(err, ErrDuplicate.Code, ErrDuplicate.Status, ErrDuplicate.Message)
		case pgForeignKeyViolation:
			return Wrap(err, ErrForeignKey.Code, ErrForeignKey.Status, ErrForeignKey.Message)
		}
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return Wrap(err, ErrFileTooLarge.Code, ErrFileTooLarge.Status, ErrFileTooLarge.Message)
	}
	if e != nil {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
