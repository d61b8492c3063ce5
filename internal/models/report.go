package models

import (
	"fmt"
	"strconv"
)

// ReportKind selects one of the canned report aggregations.
type ReportKind string

const (
	ReportMonthly  ReportKind = "bulanan"
	ReportSemester ReportKind = "semester"
)

// DateRange is an inclusive range of calendar dates formatted YYYY-MM-DD.
type DateRange struct {
	Start string
	End   string
}

// ReportFilter parameterises report queries.
type ReportFilter struct {
	Kind         ReportKind
	Range        *DateRange
	ProgramStudi string
}

// Decimal holds a NUMERIC value exactly as PostgreSQL rendered it. It is
// encoded into JSON as a bare number, or null when the value was NULL.
type Decimal struct {
	Text  string
	Valid bool
}

// NewDecimal builds a valid Decimal from its textual form.
func NewDecimal(text string) Decimal {
	return Decimal{Text: text, Valid: true}
}

// Scan implements sql.Scanner.
func (d *Decimal) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Decimal{}
	case []byte:
		*d = NewDecimal(string(v))
	case string:
		*d = NewDecimal(v)
	case float64:
		*d = NewDecimal(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		*d = NewDecimal(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("scan decimal: unsupported type %T", src)
	}
	return nil
}

// Float64 returns the value as a float, zero when NULL or unparsable.
func (d Decimal) Float64() float64 {
	if !d.Valid {
		return 0
	}
	f, err := strconv.ParseFloat(d.Text, 64)
	if err != nil {
		return 0
	}
	return f
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(d.Text, 64); err != nil {
		return nil, fmt.Errorf("marshal decimal %q: %w", d.Text, err)
	}
	return []byte(d.Text), nil
}

// MonthlyReportRow summarises one advising session.
type MonthlyReportRow struct {
	BimbinganID     int64  `db:"bimbingan_id" json:"bimbingan_id"`
	NIM             string `db:"nim" json:"nim"`
	NamaMahasiswa   string `db:"nama_mahasiswa" json:"nama_mahasiswa"`
	NamaDosen       string `db:"nama_dosen" json:"nama_dosen"`
	StatusBimbingan string `db:"status_bimbingan" json:"status_bimbingan"`
	TotalBimbingan  int    `db:"total_bimbingan" json:"total_bimbingan"`
	TotalProgress   int    `db:"total_progress" json:"total_progress"`
	ProgressSelesai int    `db:"progress_selesai" json:"progress_selesai"`
	ProgressRevisi  int    `db:"progress_revisi" json:"progress_revisi"`
}

// SemesterReportRow summarises all sessions of one advisor.
type SemesterReportRow struct {
	DosenID              string   `db:"dosen_id" json:"dosen_id"`
	NamaDosen            string   `db:"nama_dosen" json:"nama_dosen"`
	TotalBimbingan       int      `db:"total_bimbingan" json:"total_bimbingan"`
	BimbinganSelesai     int      `db:"bimbingan_selesai" json:"bimbingan_selesai"`
	BimbinganBerlangsung int      `db:"bimbingan_berlangsung" json:"bimbingan_berlangsung"`
	RataRataPertemuan    Decimal  `db:"rata_rata_pertemuan" json:"rata_rata_pertemuan"`
	TotalProgress        int      `db:"total_progress" json:"total_progress"`
}

// ReportStatistics are the overall advising counters.
type ReportStatistics struct {
	TotalBimbingan          int      `db:"total_bimbingan" json:"total_bimbingan"`
	TotalMahasiswaBimbingan int      `db:"total_mahasiswa_bimbingan" json:"total_mahasiswa_bimbingan"`
	TotalDosenPembimbing    int      `db:"total_dosen_pembimbing" json:"total_dosen_pembimbing"`
	TotalProgress           int      `db:"total_progress" json:"total_progress"`
	RataRataPertemuan       Decimal  `db:"rata_rata_pertemuan" json:"rata_rata_pertemuan"`
}

// StatusBreakdown counts sessions per status.
type StatusBreakdown struct {
	StatusBimbingan string `db:"status_bimbingan" json:"status_bimbingan"`
	Jumlah          int    `db:"jumlah" json:"jumlah"`
}
