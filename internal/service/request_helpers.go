package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bimta/bimta-api/internal/dto"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

// uploadName builds a collision resistant object name under dir.
func uploadName(dir, filename, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = fallbackExt
	}
	return fmt.Sprintf("%s/%d-%s%s", dir, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

// checkUpload enforces a size limit and a content type predicate.
func checkUpload(file *dto.FileUpload, maxSize int64, accept func(string) bool, typeMessage string) error {
	if !accept(strings.ToLower(file.ContentType)) {
		return appErrors.Clone(appErrors.ErrValidation, typeMessage)
	}
	if maxSize > 0 && file.Size > maxSize {
		return appErrors.ErrFileTooLarge
	}
	return nil
}

func isImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func isPDF(contentType string) bool {
	return contentType == "application/pdf"
}

// missingRequired reports whether validation failed on an absent field.
func missingRequired(err error) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}
