package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorPassesClientErrorsThrough(t *testing.T) {
	clientErr := Clone(ErrValidation, "Semua field harus diisi")

	got := FromError(fmt.Errorf("create account: %w", clientErr))

	assert.Same(t, clientErr, got)
}

func TestFromErrorMapsConstraintViolations(t *testing.T) {
	cases := []struct {
		name    string
		code    pq.ErrorCode
		status  int
		message string
	}{
		{name: "unique", code: "23505", status: http.StatusBadRequest, message: ErrDuplicate.Message},
		{name: "foreign key", code: "23503", status: http.StatusBadRequest, message: ErrForeignKey.Message},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fmt.Errorf("insert: %w", &pq.Error{Code: tc.code})

			got := FromError(Internal(err))

			assert.Equal(t, tc.status, got.Status)
			assert.Equal(t, tc.message, got.Message)
		})
	}
}

func TestFromErrorMapsOversizedBody(t *testing.T) {
	got := FromError(fmt.Errorf("read form: %w", &http.MaxBytesError{Limit: 10}))

	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, ErrFileTooLarge.Message, got.Message)
}

func TestFromErrorHidesUnknownCauses(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	got := FromError(cause)

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Terjadi kesalahan pada server", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestFromErrorKeepsUpstreamErrors(t *testing.T) {
	upstream := Wrap(errors.New("timeout"), ErrUpstream.Code, ErrUpstream.Status, ErrUpstream.Message)

	got := FromError(upstream)

	assert.Equal(t, ErrUpstream.Code, got.Code)
	assert.Equal(t, ErrUpstream.Message, got.Message)
}

func TestInternalUnwrapsToCause(t *testing.T) {
	err := Internal(sql.ErrConnDone)

	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, err.Code)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "User tidak ditemukan")

	assert.Equal(t, "User tidak ditemukan", clone.Message)
	assert.Equal(t, "Data tidak ditemukan", ErrNotFound.Message)
	assert.Nil(t, Clone(nil, "x"))
}
