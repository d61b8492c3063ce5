package models

import (
	"strings"
	"time"
)

// Role represents the available account roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDosen     Role = "dosen"
	RoleMahasiswa Role = "mahasiswa"
)

// AccountStatus toggles whether an account may sign in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// DefaultPhotoURL is assigned to accounts created without a photo.
const DefaultPhotoURL = "/uploads/photos/default-avatar.png"

// Account is a row of the users table. It is never serialised directly; use
// View to obtain the public representation.
type Account struct {
	UserID       string        `db:"user_id"`
	Nama         string        `db:"nama"`
	NoWhatsapp   string        `db:"no_whatsapp"`
	PasswordHash string        `db:"sandi"`
	Role         Role          `db:"role"`
	PhotoURL     string        `db:"photo_url"`
	Status       AccountStatus `db:"status_user"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// AccountView is the serialisable account shape without credentials.
type AccountView struct {
	UserID     string        `json:"user_id"`
	Nama       string        `json:"nama"`
	NoWhatsapp string        `json:"no_whatsapp"`
	Role       Role          `json:"role"`
	PhotoURL   string        `json:"photo_url"`
	Status     AccountStatus `json:"status_user"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// View strips credentials from the account.
func (a Account) View() AccountView {
	return AccountView{
		UserID:     a.UserID,
		Nama:       a.Nama,
		NoWhatsapp: a.NoWhatsapp,
		Role:       a.Role,
		PhotoURL:   a.PhotoURL,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// HasCustomPhoto reports whether the photo is an uploaded file that must be
// cleaned up with the account.
func (a Account) HasCustomPhoto() bool {
	return a.PhotoURL != "" && !strings.Contains(a.PhotoURL, "default-avatar")
}

// Views converts a slice of accounts.
func Views(accounts []Account) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}
	return views
}

// AccountFilter captures filtering criteria for listing accounts.
type AccountFilter struct {
	Role   Role
	Status AccountStatus
	Search string
}

// RoleCount is one row of the per-role account tally.
type RoleCount struct {
	Role  Role `db:"role"`
	Total int  `db:"total"`
}
