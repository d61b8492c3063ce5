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

type referenceService interface {
	List(ctx context.Context, query dto.ReferenceQuery) ([]models.ReferenceDocument, error)
	Options(ctx context.Context) (*models.ReferenceOptions, error)
	Get(ctx context.Context, nim string) (*models.ReferenceDocument, error)
	Create(ctx context.Context, req dto.ReferenceRequest, document *dto.FileUpload) (*models.ReferenceDocument, error)
	Update(ctx context.Context, nim string, req dto.ReferenceRequest, document *dto.FileUpload) (*models.ReferenceDocument, error)
	Delete(ctx context.Context, nim string) error
}

// ReferenceHandler exposes the thesis reference library.
type ReferenceHandler struct {
	service    referenceService
	maxDocSize int64
}

// NewReferenceHandler constructs a reference handler.
func NewReferenceHandler(svc referenceService, maxDocSize int64) *ReferenceHandler {
	return &ReferenceHandler{service: svc, maxDocSize: maxDocSize}
}

// List godoc
// @Summary List references
// @Tags References
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches judul, nama, NIM or topik"
// @Param tahun query int false "Year"
// @Param topik query string false "Topic"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /referensi [get]
func (h *ReferenceHandler) List(c *gin.Context) {
	var query dto.ReferenceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	docs, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, docs, len(docs))
}

// Options godoc
// @Summary Reference filter options
// @Description Distinct years and topics for filter dropdowns
// @Tags References
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /referensi/options [get]
func (h *ReferenceHandler) Options(c *gin.Context) {
	opts, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opts)
}

// Get godoc
// @Summary Get reference
// @Tags References
// @Produce json
// @Security BearerAuth
// @Param nim path string true "Student NIM"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /referensi/{nim} [get]
func (h *ReferenceHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("nim"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Create godoc
// @Summary Create reference
// @Tags References
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param nim_mahasiswa formData string true "Student NIM"
// @Param nama_mahasiswa formData string true "Student name"
// @Param judul formData string true "Thesis title"
// @Param topik formData string true "Topic"
// @Param tahun formData int true "Year"
// @Param document formData file true "Thesis PDF"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /referensi [post]
func (h *ReferenceHandler) Create(c *gin.Context) {
	var req dto.ReferenceRequest
	if err := bindMultipart(c, h.maxDocSize, &req); err != nil {
		response.Error(c, err)
		return
	}
	document, closeDocument, err := formFile(c, "document")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeDocument()

	doc, err := h.service.Create(c.Request.Context(), req, document)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Referensi berhasil ditambahkan", doc)
}

// Update godoc
// @Summary Update reference
// @Tags References
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param nim path string true "Student NIM"
// @Param nama_mahasiswa formData string false "Student name"
// @Param judul formData string false "Thesis title"
// @Param topik formData string false "Topic"
// @Param tahun formData int false "Year"
// @Param document formData file false "Replacement PDF"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /referensi/{nim} [put]
func (h *ReferenceHandler) Update(c *gin.Context) {
	var req dto.ReferenceRequest
	if err := bindMultipart(c, h.maxDocSize, &req); err != nil {
		response.Error(c, err)
		return
	}
	document, closeDocument, err := formFile(c, "document")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeDocument()

	doc, err := h.service.Update(c.Request.Context(), c.Param("nim"), req, document)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc, "Referensi berhasil diupdate")
}

// Delete godoc
// @Summary Delete reference
// @Tags References
// @Produce json
// @Security BearerAuth
// @Param nim path string true "Student NIM"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /referensi/{nim} [delete]
func (h *ReferenceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("nim")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Referensi berhasil dihapus")
}
