package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type advisingRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.AdvisingSession, error)
	FindByID(ctx context.Context, id int64) (*models.AdvisingSession, error)
	ListProgress(ctx context.Context, bimbinganID int64) ([]models.ProgressEntry, error)
}

// AdvisingService exposes read access to advising sessions.
type AdvisingService struct {
	repo   advisingRepository
	logger *zap.Logger
}

// NewAdvisingService constructs the advising service.
func NewAdvisingService(repo advisingRepository, logger *zap.Logger) *AdvisingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisingService{repo: repo, logger: logger}
}

// List returns sessions matching the query.
func (s *AdvisingService) List(ctx context.Context, query dto.SessionQuery) ([]models.AdvisingSession, error) {
	status := models.SessionStatus(query.Status)
	if status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Status bimbingan tidak valid")
	}
	sessions, err := s.repo.List(ctx, models.SessionFilter{Status: status, DosenID: query.DosenID, MahasiswaID: query.MahasiswaID})
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return sessions, nil
}

// Get returns a session with its progress history.
func (s *AdvisingService) Get(ctx context.Context, rawID string) (*models.SessionDetail, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Bimbingan tidak ditemukan")
	}
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Bimbingan tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}
	progress, err := s.repo.ListProgress(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return &models.SessionDetail{AdvisingSession: *session, Progress: progress}, nil
}
