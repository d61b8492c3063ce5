package dto

import "github.com/bimta/bimta-api/internal/models"

// DashboardResponse is the landing page payload.
type DashboardResponse struct {
	Statistics       DashboardStatistics     `json:"statistics"`
	QuickActions     []QuickAction           `json:"quickActions"`
	RecentActivities []models.RecentActivity `json:"recentActivities"`
	SystemWarnings   []SystemWarning         `json:"systemWarnings"`
}

// DashboardStatistics holds the headline counters.
type DashboardStatistics struct {
	TotalMahasiswa int            `json:"totalMahasiswa"`
	TotalDosen     int            `json:"totalDosen"`
	TotalReferensi int            `json:"totalReferensi"`
	TotalBimbingan SessionTallies `json:"totalBimbingan"`
}

// SessionTallies counts advising sessions per status.
type SessionTallies struct {
	Ongoing    int `json:"ongoing"`
	Done       int `json:"done"`
	Warning    int `json:"warning"`
	Terminated int `json:"terminated"`
}

// QuickAction links to a frequent admin task.
type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Link        string `json:"link"`
}

// SystemWarning is a notice shown on the dashboard.
type SystemWarning struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Time    string `json:"time"`
}
