package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bimta/bimta-api/internal/dto"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

const (
	recentActivityLimit    = 5
	busyOngoingThreshold   = 50
	backupNoticeMessage    = "Backup sistem berhasil diselesaikan"
	inactiveStudentsNotice = "%d mahasiswa belum login sejak lama"
)

type roleCounter interface {
	CountByRole(ctx context.Context) ([]models.RoleCount, error)
}

type referenceCounter interface {
	Count(ctx context.Context) (int, error)
}

type sessionStats interface {
	CountByStatus(ctx context.Context) ([]models.SessionStatusCount, error)
	RecentActivity(ctx context.Context, limit int) ([]models.RecentActivity, error)
}

var quickActions = []dto.QuickAction{
	{Title: "Kelola Akun Mahasiswa", Description: "Tambah, edit dan kelola akun mahasiswa", Icon: "👨‍🎓", Link: "/akun-mahasiswa"},
	{Title: "Kelola Akun Dosen", Description: "Tambah, edit dan kelola akun dosen", Icon: "👨‍🏫", Link: "/akun-dosen"},
	{Title: "Referensi TA", Description: "Upload dan kelola referensi tugas akhir", Icon: "📚", Link: "/referensi-ta"},
	{Title: "Generate Laporan", Description: "Buat laporan bimbingan berbasis periode", Icon: "📊", Link: "/generate-laporan"},
}

// DashboardService composes the admin landing page. Nothing is cached.
type DashboardService struct {
	accounts   roleCounter
	references referenceCounter
	sessions   sessionStats
	logger     *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(accounts roleCounter, references referenceCounter, sessions sessionStats, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{accounts: accounts, references: references, sessions: sessions, logger: logger}
}

// Summary aggregates counters, recent activity and notices.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	roles, err := s.accounts.CountByRole(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	references, err := s.references.Count(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	statuses, err := s.sessions.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	activities, err := s.sessions.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}

	stats := dto.DashboardStatistics{TotalReferensi: nonNegative(references)}
	for _, rc := range roles {
		switch rc.Role {
		case models.RoleMahasiswa:
			stats.TotalMahasiswa = nonNegative(rc.Total)
		case models.RoleDosen:
			stats.TotalDosen = nonNegative(rc.Total)
		}
	}
	for _, sc := range statuses {
		switch sc.Status {
		case models.SessionOngoing:
			stats.TotalBimbingan.Ongoing = nonNegative(sc.Total)
		case models.SessionDone:
			stats.TotalBimbingan.Done = nonNegative(sc.Total)
		case models.SessionWarning:
			stats.TotalBimbingan.Warning = nonNegative(sc.Total)
		case models.SessionTerminated:
			stats.TotalBimbingan.Terminated = nonNegative(sc.Total)
		}
	}

	actions := make([]dto.QuickAction, len(quickActions))
	copy(actions, quickActions)

	return &dto.DashboardResponse{
		Statistics:       stats,
		QuickActions:     actions,
		RecentActivities: activities,
		SystemWarnings:   systemWarnings(stats.TotalBimbingan),
	}, nil
}

func systemWarnings(tallies dto.SessionTallies) []dto.SystemWarning {
	warnings := make([]dto.SystemWarning, 0, 3)
	if tallies.Warning > 0 {
		warnings = append(warnings, dto.SystemWarning{
			Message: fmt.Sprintf(inactiveStudentsNotice, tallies.Warning),
			Type:    "warning",
			Time:    "3 jam lalu",
		})
	}
	if tallies.Ongoing > busyOngoingThreshold {
		warnings = append(warnings, dto.SystemWarning{
			Message: "Dosen referensi mencapai 85%",
			Type:    "info",
			Time:    "1 jam lalu",
		})
	}
	return append(warnings, dto.SystemWarning{Message: backupNoticeMessage, Type: "success", Time: "2 jam lalu"})
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
