package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type accountRepository interface {
	FindByID(ctx context.Context, userID string) (*models.Account, error)
	List(ctx context.Context, filter models.AccountFilter) ([]models.Account, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}

type photoStorage interface {
	SaveStream(name string, r io.Reader) (string, error)
	Delete(publicURL string) error
}

// AccountService manages student and lecturer accounts.
type AccountService struct {
	repo         accountRepository
	photos       photoStorage
	validator    *validator.Validate
	logger       *zap.Logger
	maxPhotoSize int64
}

// NewAccountService constructs the account service.
func NewAccountService(repo accountRepository, photos photoStorage, maxPhotoSize int64, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, photos: photos, validator: validate, logger: logger, maxPhotoSize: maxPhotoSize}
}

// List returns accounts matching the query.
func (s *AccountService) List(ctx context.Context, query dto.AccountQuery) ([]models.AccountView, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Filter tidak valid")
	}
	accounts, err := s.repo.List(ctx, models.AccountFilter{
		Role:   models.Role(query.Role),
		Status: models.AccountStatus(query.Status),
		Search: strings.TrimSpace(query.Search),
	})
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	return models.Views(accounts), nil
}

// Get returns one account.
func (s *AccountService) Get(ctx context.Context, userID string) (*models.AccountView, error) {
	account, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := account.View()
	return &view, nil
}

// Create registers a student or lecturer account with an optional photo.
func (s *AccountService) Create(ctx context.Context, req dto.CreateAccountRequest, photo *dto.FileUpload) (*models.AccountView, error) {
	if photo != nil {
		if err := checkUpload(photo, s.maxPhotoSize, isImage, "File harus berupa gambar"); err != nil {
			return nil, err
		}
	}
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "User ID sudah digunakan")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	photoURL := models.DefaultPhotoURL
	if photo != nil {
		if photoURL, err = s.photos.SaveStream(uploadName("photos", photo.Filename, ".jpg"), photo.Body); err != nil {
			return nil, appErrors.Internal(err)
		}
	}

	account := &models.Account{
		UserID:       req.UserID,
		Nama:         req.Nama,
		NoWhatsapp:   req.NoWhatsapp,
		PasswordHash: string(hash),
		Role:         models.Role(req.Role),
		PhotoURL:     photoURL,
		Status:       models.StatusActive,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if photo != nil {
			s.removePhoto(photoURL)
		}
		return nil, appErrors.Internal(err)
	}

	view := account.View()
	return &view, nil
}

// Update merges the provided profile fields into the stored account. A new
// photo replaces the previous upload.
func (s *AccountService) Update(ctx context.Context, userID string, req dto.UpdateAccountRequest, photo *dto.FileUpload) (*models.AccountView, error) {
	if photo != nil {
		if err := checkUpload(photo, s.maxPhotoSize, isImage, "File harus berupa gambar"); err != nil {
			return nil, err
		}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Status harus active atau inactive")
	}

	account, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := *account

	if req.Nama != "" {
		account.Nama = req.Nama
	}
	if req.NoWhatsapp != "" {
		account.NoWhatsapp = req.NoWhatsapp
	}
	if req.Status != "" {
		account.Status = models.AccountStatus(req.Status)
	}
	if photo != nil {
		if account.PhotoURL, err = s.photos.SaveStream(uploadName("photos", photo.Filename, ".jpg"), photo.Body); err != nil {
			return nil, appErrors.Internal(err)
		}
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if photo != nil {
			s.removePhoto(account.PhotoURL)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}

	if photo != nil && previous.HasCustomPhoto() {
		s.removePhoto(previous.PhotoURL)
	}

	view := account.View()
	return &view, nil
}

// ResetPassword replaces the password of an account.
func (s *AccountService) ResetPassword(ctx context.Context, userID string, req dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Password baru harus diisi")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Internal(err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "User tidak ditemukan")
		}
		return appErrors.Internal(err)
	}
	return nil
}

// Delete removes the account and its uploaded photo.
func (s *AccountService) Delete(ctx context.Context, userID string) error {
	account, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "User tidak ditemukan")
		}
		return appErrors.Internal(err)
	}
	if account.HasCustomPhoto() {
		s.removePhoto(account.PhotoURL)
	}
	return nil
}

func (s *AccountService) find(ctx context.Context, userID string) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}
	return account, nil
}

func (s *AccountService) validateCreate(req dto.CreateAccountRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	if missingRequired(err) {
		return appErrors.Clone(appErrors.ErrValidation, "Semua field harus diisi")
	}
	return appErrors.Clone(appErrors.ErrValidation, "Role harus mahasiswa atau dosen")
}

func (s *AccountService) removePhoto(url string) {
	if err := s.photos.Delete(url); err != nil {
		s.logger.Warn("failed to delete photo", zap.String("photo_url", url), zap.Error(err))
	}
}
