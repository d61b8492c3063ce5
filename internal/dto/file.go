package dto

import "io"

// FileUpload is a single file taken from a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}
