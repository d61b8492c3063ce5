package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bimta/bimta-api/internal/dto"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/response"
)

type reportService interface {
	Generate(ctx context.Context, query dto.ReportQuery) (*dto.ReportResponse, error)
	Statistics(ctx context.Context, query dto.ReportQuery) (*dto.StatisticsResponse, error)
}

type exportService interface {
	Export(ctx context.Context, query dto.ReportQuery) (*dto.ExportFile, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportService
	exports exportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Generate godoc
// @Summary Generate advising report
// @Tags Laporan
// @Produce json
// @Security BearerAuth
// @Param jenis_laporan query string true "bulanan or semester"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param program_studi query string false "Program code matched against dosen user id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /laporan/generate [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	query, ok := bindReportQuery(c)
	if !ok {
		return
	}
	report, err := h.reports.Generate(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Statistics godoc
// @Summary Report statistics
// @Tags Laporan
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /laporan/statistik [get]
func (h *ReportHandler) Statistics(c *gin.Context) {
	query, ok := bindReportQuery(c)
	if !ok {
		return
	}
	stats, err := h.reports.Statistics(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Export godoc
// @Summary Export advising report
// @Tags Laporan
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param jenis_laporan query string true "bulanan or semester"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param program_studi query string false "Program code"
// @Param format query string false "xlsx (default), csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /laporan/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	query, ok := bindReportQuery(c)
	if !ok {
		return
	}
	file, err := h.exports.Export(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Content-Length", strconv.Itoa(len(file.Content)))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func bindReportQuery(c *gin.Context) (dto.ReportQuery, bool) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return query, false
	}
	return query, true
}
