package dto

// CreateAccountRequest is the multipart form for creating an account.
type CreateAccountRequest struct {
	UserID     string `form:"user_id" validate:"required"`
	Nama       string `form:"nama" validate:"required"`
	NoWhatsapp string `form:"no_whatsapp" validate:"required"`
	Password   string `form:"password" validate:"required"`
	Role       string `form:"role" validate:"required,oneof=mahasiswa dosen"`
}

// UpdateAccountRequest is the multipart form for updating an account. Empty
// fields keep their stored value.
type UpdateAccountRequest struct {
	Nama       string `form:"nama"`
	NoWhatsapp string `form:"no_whatsapp"`
	Status     string `form:"status_user" validate:"omitempty,oneof=active inactive"`
}

// ResetPasswordRequest sets a new password for an account.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// AccountQuery captures account list filters.
type AccountQuery struct {
	Role   string `form:"role" validate:"omitempty,oneof=admin dosen mahasiswa"`
	Status string `form:"status" validate:"omitempty,oneof=active inactive"`
	Search string `form:"search"`
}
