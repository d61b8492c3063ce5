package dto

// SessionQuery captures advising session list filters.
type SessionQuery struct {
	Status      string `form:"status_bimbingan" validate:"omitempty,oneof=ongoing done warning terminated"`
	DosenID     string `form:"dosen_id"`
	MahasiswaID string `form:"mahasiswa_id"`
}
