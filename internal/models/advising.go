package models

import "time"

// SessionStatus is the overall state of an advising session.
type SessionStatus string

const (
	SessionOngoing    SessionStatus = "ongoing"
	SessionDone       SessionStatus = "done"
	SessionWarning    SessionStatus = "warning"
	SessionTerminated SessionStatus = "terminated"
)

// Valid reports whether the status is one of the enumerated values.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionOngoing, SessionDone, SessionWarning, SessionTerminated:
		return true
	}
	return false
}

// Progress statuses referenced by reports.
const (
	ProgressDone         = "done"
	ProgressNeedRevision = "need_revision"
)

// AdvisingSession (bimbingan) pairs one student with one advisor.
type AdvisingSession struct {
	BimbinganID    int64         `db:"bimbingan_id" json:"bimbingan_id"`
	MahasiswaID    string        `db:"mahasiswa_id" json:"mahasiswa_id"`
	DosenID        string        `db:"dosen_id" json:"dosen_id"`
	NamaMahasiswa  string        `db:"nama_mahasiswa" json:"nama_mahasiswa"`
	NamaDosen      string        `db:"nama_dosen" json:"nama_dosen"`
	Status         SessionStatus `db:"status_bimbingan" json:"status_bimbingan"`
	TotalBimbingan int           `db:"total_bimbingan" json:"total_bimbingan"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// ProgressEntry is one logged supervision meeting under a session.
type ProgressEntry struct {
	ProgressID  int64     `db:"progress_id" json:"progress_id"`
	BimbinganID int64     `db:"bimbingan_id" json:"bimbingan_id"`
	Subject     string    `db:"subject_progress" json:"subject_progress"`
	Description *string   `db:"description_progress" json:"description_progress"`
	Status      string    `db:"status_progress" json:"status_progress"`
	Datetime    time.Time `db:"datetime" json:"datetime"`
}

// SessionDetail is a session together with its progress history.
type SessionDetail struct {
	AdvisingSession
	Progress []ProgressEntry `json:"progress"`
}

// SessionFilter narrows session listing.
type SessionFilter struct {
	Status      SessionStatus
	DosenID     string
	MahasiswaID string
}

// SessionStatusCount is one row of the per-status session tally.
type SessionStatusCount struct {
	Status SessionStatus `db:"status_bimbingan"`
	Total  int           `db:"total"`
}

// RecentActivity is a progress entry joined to the names involved.
type RecentActivity struct {
	Datetime      time.Time `db:"datetime" json:"datetime"`
	Activity      string    `db:"activity" json:"activity"`
	MahasiswaNama string    `db:"mahasiswa_nama" json:"mahasiswa_nama"`
	DosenNama     string    `db:"dosen_nama" json:"dosen_nama"`
}
