package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type referenceRepository interface {
	List(ctx context.Context, filter models.ReferenceFilter) ([]models.ReferenceDocument, error)
	FindByNIM(ctx context.Context, nim string) (*models.ReferenceDocument, error)
	Create(ctx context.Context, item *models.ReferenceDocument) error
	Update(ctx context.Context, item *models.ReferenceDocument) error
	Delete(ctx context.Context, nim string) error
	Years(ctx context.Context) ([]int, error)
	Topics(ctx context.Context) ([]string, error)
}

type documentStore interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// ReferenceService manages the thesis reference catalogue and its PDFs.
type ReferenceService struct {
	repo       referenceRepository
	documents  documentStore
	validator  *validator.Validate
	logger     *zap.Logger
	maxDocSize int64
}

// NewReferenceService constructs the reference service.
func NewReferenceService(repo referenceRepository, documents documentStore, maxDocSize int64, validate *validator.Validate, logger *zap.Logger) *ReferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, documents: documents, validator: validate, logger: logger, maxDocSize: maxDocSize}
}

// List returns references matching the query.
func (s *ReferenceService) List(ctx context.Context, query dto.ReferenceQuery) ([]models.ReferenceDocument, error) {
	filter := models.ReferenceFilter{Search: strings.TrimSpace(query.Search), Topik: strings.TrimSpace(query.Topik)}
	if query.Tahun != "" {
		year, err := parseYear(query.Tahun)
		if err != nil {
			return nil, err
		}
		filter.Tahun = &year
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return items, nil
}

// Options returns the distinct years and topics used for filtering.
func (s *ReferenceService) Options(ctx context.Context) (*models.ReferenceOptions, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	topics, err := s.repo.Topics(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return &models.ReferenceOptions{Years: years, Topics: topics}, nil
}

// Get returns one reference.
func (s *ReferenceService) Get(ctx context.Context, nim string) (*models.ReferenceDocument, error) {
	item, err := s.repo.FindByNIM(ctx, nim)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Referensi tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}
	return item, nil
}

// Create stores the PDF and then catalogues the reference. An insert failure
// leaves the uploaded object behind.
func (s *ReferenceService) Create(ctx context.Context, req dto.ReferenceRequest, document *dto.FileUpload) (*models.ReferenceDocument, error) {
	if document != nil {
		if err := checkUpload(document, s.maxDocSize, isPDF, "File harus berupa PDF"); err != nil {
			return nil, err
		}
	}
	if err := s.validator.Struct(req); err != nil {
		if missingRequired(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "NIM, nama mahasiswa, judul, topik, dan tahun harus diisi")
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "Tahun harus berupa angka")
	}
	if document == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "File PDF harus diupload")
	}
	year, err := parseYear(req.Tahun)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByNIM(ctx, req.NIM); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "NIM mahasiswa sudah ada dalam referensi")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err)
	}

	url, err := s.documents.Upload(ctx, uploadName("documents", document.Filename, ".pdf"), "application/pdf", document.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	item := &models.ReferenceDocument{
		NIM:           req.NIM,
		NamaMahasiswa: req.NamaMahasiswa,
		Judul:         req.Judul,
		Topik:         req.Topik,
		Tahun:         year,
		DocURL:        url,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Warn("reference insert failed after upload", zap.String("doc_url", url), zap.Error(err))
		return nil, appErrors.Internal(err)
	}
	return item, nil
}

// Update merges the provided fields and optionally replaces the PDF. The
// superseded object is removed once the row points at the new one.
func (s *ReferenceService) Update(ctx context.Context, nim string, req dto.ReferenceRequest, document *dto.FileUpload) (*models.ReferenceDocument, error) {
	if document != nil {
		if err := checkUpload(document, s.maxDocSize, isPDF, "File harus berupa PDF"); err != nil {
			return nil, err
		}
	}
	var year int
	if req.Tahun != "" {
		parsed, err := parseYear(req.Tahun)
		if err != nil {
			return nil, err
		}
		year = parsed
	}

	item, err := s.Get(ctx, nim)
	if err != nil {
		return nil, err
	}
	previousURL := item.DocURL

	if req.NamaMahasiswa != "" {
		item.NamaMahasiswa = req.NamaMahasiswa
	}
	if req.Judul != "" {
		item.Judul = req.Judul
	}
	if req.Topik != "" {
		item.Topik = req.Topik
	}
	if year != 0 {
		item.Tahun = year
	}
	if document != nil {
		url, err := s.documents.Upload(ctx, uploadName("documents", document.Filename, ".pdf"), "application/pdf", document.Body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
		}
		item.DocURL = url
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if document != nil {
			s.removeDocument(ctx, item.DocURL)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Referensi tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}
	if document != nil {
		s.removeDocument(ctx, previousURL)
	}
	return item, nil
}

// Delete removes the reference and then its PDF.
func (s *ReferenceService) Delete(ctx context.Context, nim string) error {
	item, err := s.Get(ctx, nim)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, nim); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Referensi tidak ditemukan")
		}
		return appErrors.Internal(err)
	}
	s.removeDocument(ctx, item.DocURL)
	return nil
}

func (s *ReferenceService) removeDocument(ctx context.Context, url string) {
	key, ok := s.documents.KeyFromURL(url)
	if !ok {
		s.logger.Warn("document url outside bucket", zap.String("doc_url", url))
		return
	}
	if err := s.documents.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete document", zap.String("key", key), zap.Error(err))
	}
}

// parseYear accepts a four digit year.
func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1000 || year > 9999 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Tahun harus berupa angka")
	}
	return year, nil
}
