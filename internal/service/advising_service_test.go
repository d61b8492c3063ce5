package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type fakeAdvisingRepo struct {
	sessions   map[int64]models.AdvisingSession
	progress   map[int64][]models.ProgressEntry
	lastFilter models.SessionFilter
}

func (f *fakeAdvisingRepo) List(_ context.Context, filter models.SessionFilter) ([]models.AdvisingSession, error) {
	f.lastFilter = filter
	out := make([]models.AdvisingSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeAdvisingRepo) FindByID(_ context.Context, id int64) (*models.AdvisingSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeAdvisingRepo) ListProgress(_ context.Context, id int64) ([]models.ProgressEntry, error) {
	return f.progress[id], nil
}

func TestAdvisingServiceListValidatesStatus(t *testing.T) {
	repo := &fakeAdvisingRepo{}
	svc := NewAdvisingService(repo, nil)

	_, err := svc.List(context.Background(), dto.SessionQuery{Status: "paused"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = svc.List(context.Background(), dto.SessionQuery{Status: "warning", DosenID: "IT001"})
	require.NoError(t, err)
	assert.Equal(t, models.SessionFilter{Status: models.SessionWarning, DosenID: "IT001"}, repo.lastFilter)
}

func TestAdvisingServiceGet(t *testing.T) {
	repo := &fakeAdvisingRepo{
		sessions: map[int64]models.AdvisingSession{7: {BimbinganID: 7, NamaDosen: "Dr. Budi"}},
		progress: map[int64][]models.ProgressEntry{7: {{ProgressID: 1, BimbinganID: 7}}},
	}
	svc := NewAdvisingService(repo, nil)

	detail, err := svc.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Budi", detail.NamaDosen)
	assert.Len(t, detail.Progress, 1)

	for _, id := range []string{"8", "abc", "-1"} {
		_, err := svc.Get(context.Background(), id)
		appErr := appErrors.FromError(err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, "Bimbingan tidak ditemukan", appErr.Message)
	}
}
