package models

import "time"

// ReferenceDocument is a catalogued past thesis keyed by the student's NIM.
type ReferenceDocument struct {
	NIM           string    `db:"nim_mahasiswa" json:"nim_mahasiswa"`
	NamaMahasiswa string    `db:"nama_mahasiswa" json:"nama_mahasiswa"`
	Judul         string    `db:"judul" json:"judul"`
	Topik         string    `db:"topik" json:"topik"`
	Tahun         int       `db:"tahun" json:"tahun"`
	DocURL        string    `db:"doc_url" json:"doc_url"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ReferenceFilter narrows reference listing.
type ReferenceFilter struct {
	Search string
	Tahun  *int
	Topik  string
}

// ReferenceOptions lists the distinct values available for filtering.
type ReferenceOptions struct {
	Years  []int    `json:"years"`
	Topics []string `json:"topics"`
}
