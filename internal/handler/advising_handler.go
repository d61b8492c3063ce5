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

type advisingService interface {
	List(ctx context.Context, query dto.SessionQuery) ([]models.AdvisingSession, error)
	Get(ctx context.Context, rawID string) (*models.SessionDetail, error)
}

// AdvisingHandler exposes read-only advising session endpoints.
type AdvisingHandler struct {
	service advisingService
}

// NewAdvisingHandler constructs an advising handler.
func NewAdvisingHandler(svc advisingService) *AdvisingHandler {
	return &AdvisingHandler{service: svc}
}

// List godoc
// @Summary List advising sessions
// @Tags Bimbingan
// @Produce json
// @Security BearerAuth
// @Param status_bimbingan query string false "ongoing, done, warning or terminated"
// @Param dosen_id query string false "Advisor user id"
// @Param mahasiswa_id query string false "Student user id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bimbingan [get]
func (h *AdvisingHandler) List(c *gin.Context) {
	var query dto.SessionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	sessions, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, sessions, len(sessions))
}

// Get godoc
// @Summary Advising session detail
// @Tags Bimbingan
// @Produce json
// @Security BearerAuth
// @Param bimbinganId path int true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bimbingan/{bimbinganId} [get]
func (h *AdvisingHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("bimbinganId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}
