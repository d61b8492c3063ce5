package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/response"
)

type accountService interface {
	List(ctx context.Context, query dto.AccountQuery) ([]models.AccountView, error)
	Get(ctx context.Context, userID string) (*models.AccountView, error)
	Create(ctx context.Context, req dto.CreateAccountRequest, photo *dto.FileUpload) (*models.AccountView, error)
	Update(ctx context.Context, userID string, req dto.UpdateAccountRequest, photo *dto.FileUpload) (*models.AccountView, error)
	ResetPassword(ctx context.Context, userID string, req dto.ResetPasswordRequest) error
	Delete(ctx context.Context, userID string) error
}

// AccountHandler handles account management endpoints.
type AccountHandler struct {
	service      accountService
	maxPhotoSize int64
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(svc accountService, maxPhotoSize int64) *AccountHandler {
	return &AccountHandler{service: svc, maxPhotoSize: maxPhotoSize}
}

// List godoc
// @Summary List accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "admin, dosen or mahasiswa"
// @Param status query string false "active or inactive"
// @Param search query string false "Matches nama or user_id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users [get]
func (h *AccountHandler) List(c *gin.Context) {
	var query dto.AccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	accounts, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, accounts, len(accounts))
}

// Get godoc
// @Summary Get account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{userId} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.service.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, account)
}

// Create godoc
// @Summary Create account
// @Description Create a dosen or mahasiswa account with an optional profile photo
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param user_id formData string true "User ID"
// @Param nama formData string true "Full name"
// @Param no_whatsapp formData string true "WhatsApp number"
// @Param password formData string true "Password"
// @Param role formData string true "dosen or mahasiswa"
// @Param photo formData file false "Profile photo"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := bindMultipart(c, h.maxPhotoSize, &req); err != nil {
		response.Error(c, err)
		return
	}
	photo, closePhoto, err := formFile(c, "photo")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closePhoto()

	account, err := h.service.Create(c.Request.Context(), req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User berhasil dibuat", account)
}

// Update godoc
// @Summary Update account
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param nama formData string false "Full name"
// @Param no_whatsapp formData string false "WhatsApp number"
// @Param status_user formData string false "active or inactive"
// @Param photo formData file false "Profile photo"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{userId} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := bindMultipart(c, h.maxPhotoSize, &req); err != nil {
		response.Error(c, err)
		return
	}
	photo, closePhoto, err := formFile(c, "photo")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closePhoto()

	account, err := h.service.Update(c.Request.Context(), c.Param("userId"), req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, account, "User berhasil diupdate")
}

// ResetPassword godoc
// @Summary Reset account password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param payload body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{userId}/reset-password [patch]
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Password baru harus diisi"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("userId"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Password berhasil direset")
}

// Delete godoc
// @Summary Delete account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{userId} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "User berhasil dihapus")
}
