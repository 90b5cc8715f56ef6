package services

import (
	"context"
	"time"

	"github.com/faisal-gif/project-daily-log/models"

	"gorm.io/gorm"
)

type DashboardService struct{ db *gorm.DB }

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{db: db} }

type UserDashboard struct {
	DailyLogs []models.DailyLog `json:"dailyLogs"`
	Stats     struct {
		TodayCount int           `json:"todayCount"`
		WeekCount  int           `json:"weekCount"`
		WeeklyData []SeriesPoint `json:"weeklyData"`
	} `json:"stats"`
}

// ForUser builds the staff dashboard: the last 30 days of the user's
// own logs plus today/week counters and a zero-filled 7-day series.
func (s *DashboardService) ForUser(ctx context.Context, userID uint) (*UserDashboard, error) {
	today := dayStart(time.Now())
	monthAgo := today.AddDate(0, 0, -29)
	weekAgo := today.AddDate(0, 0, -6)

	var logs []models.DailyLog
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC") }).
		Where("user_id = ? AND date >= ?", userID, monthAgo).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	var weekLogs []models.DailyLog
	for _, l := range logs {
		if !l.Date.Before(weekAgo) {
			weekLogs = append(weekLogs, l)
		}
	}

	out := &UserDashboard{DailyLogs: logs}
	out.Stats.WeeklyData = buildSeries(weekLogs, today, 7)
	for _, p := range out.Stats.WeeklyData {
		out.Stats.WeekCount += p.Count
	}
	out.Stats.TodayCount = out.Stats.WeeklyData[len(out.Stats.WeeklyData)-1].Count

	return out, nil
}

type AdminDashboard struct {
	UserStats struct {
		Total  int64 `json:"total"`
		Admin  int64 `json:"admin"`
		Staff  int64 `json:"staff"`
		Viewer int64 `json:"viewer"`
	} `json:"userStats"`
	LogStats struct {
		Today int64 `json:"today"`
		Week  int64 `json:"week"`
		Total int64 `json:"total"`
	} `json:"logStats"`
}

// ForAdmin builds the admin landing page counters: users by role and
// item volume today / this calendar week / all-time.
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	out := &AdminDashboard{}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&out.UserStats.Total).Error; err != nil {
		return nil, err
	}
	for role, dst := range map[string]*int64{
		models.RoleAdmin:  &out.UserStats.Admin,
		models.RoleStaff:  &out.UserStats.Staff,
		models.RoleViewer: &out.UserStats.Viewer,
	} {
		if err := db.Model(&models.User{}).Where("role = ?", role).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	today := dayStart(time.Now())
	weekStart := startOfWeek(today)

	if err := db.Model(&models.LogItem{}).
		Where("created_at >= ?", today).
		Count(&out.LogStats.Today).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.LogItem{}).
		Where("created_at >= ?", weekStart).
		Count(&out.LogStats.Week).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.LogItem{}).Count(&out.LogStats.Total).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Monday-based week start, matching the report period selector.
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}
