package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/bimta/bimta-api/internal/dto"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

// multipartOverhead leaves room for the text fields next to the file part.
const multipartOverhead = 1 << 20

// bindMultipart caps the request body at maxFile plus form overhead and binds
// the text fields into dst.
func bindMultipart(c *gin.Context, maxFile int64, dst interface{}) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFile+multipartOverhead)
	if err := c.ShouldBindWith(dst, binding.FormMultipart); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return appErrors.ErrFileTooLarge
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message)
	}
	return nil
}

// formFile opens an optional file part. The returned close func is never nil.
func formFile(c *gin.Context, field string) (*dto.FileUpload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, func() {}, appErrors.ErrFileTooLarge
		}
		return nil, func() {}, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message)
	}
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, appErrors.Internal(err)
	}
	upload := &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return upload, func() { _ = file.Close() }, nil
}
