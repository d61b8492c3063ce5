package dto

// ReferenceRequest is the multipart form for creating or updating a
// reference document. On update, empty fields keep their stored value.
type ReferenceRequest struct {
	NIM           string `form:"nim_mahasiswa" validate:"required"`
	NamaMahasiswa string `form:"nama_mahasiswa" validate:"required"`
	Judul         string `form:"judul" validate:"required"`
	Topik         string `form:"topik" validate:"required"`
	Tahun         string `form:"tahun" validate:"required,number"`
}

// ReferenceQuery captures reference list filters.
type ReferenceQuery struct {
	Search string `form:"search"`
	Tahun  string `form:"tahun" validate:"omitempty,number"`
	Topik  string `form:"topik"`
}
