package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/faisal-gif/project-daily-log/models"

	"gorm.io/gorm"
)

// Reporting windows are trailing N-day ranges anchored at today.
// Anything outside this range is rejected before touching the DB.
const MaxWindowDays = 366

var ErrInvalidWindow = errors.New("window must be between 1 and 366 days")

type ReportService struct{ db *gorm.DB }

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{db: db} }

// ---------- Output types ----------

type ReportSummary struct {
	TotalItems  int `json:"totalItems"`
	TotalPhotos int `json:"totalPhotos"`
	ActiveDays  int `json:"activeDays"`
	AvgPerDay   int `json:"avgPerDay"`
}

type SeriesPoint struct {
	Date  string `json:"date"` // 2006-01-02
	Count int    `json:"count"`
}

type HistogramBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type UserActivity struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	LogCount int    `json:"logCount"`
	// Most recent log date ever (2006-01-02), empty when the user has
	// never logged. Not clamped to the window.
	LastActivity string `json:"lastActivity"`
}

type RecentLog struct {
	ID         uint      `json:"id"`
	Date       string    `json:"date"`
	UserName   string    `json:"userName"`
	ItemCount  int       `json:"itemCount"`
	PhotoCount int       `json:"photoCount"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Report struct {
	Summary      ReportSummary     `json:"summary"`
	Series       []SeriesPoint     `json:"series"`
	Histogram    []HistogramBucket `json:"histogram"`
	UserActivity []UserActivity    `json:"userActivity"`
	RecentLogs   []RecentLog       `json:"recentLogs"`
	Days         int               `json:"days"`
}

// ---------- Entry point ----------

// Report computes the admin report over the trailing `days` window,
// all users in scope. Everything is recomputed from raw rows on each
// call; the heavy lifting is in the pure build* functions below.
func (s *ReportService) Report(ctx context.Context, days int) (*Report, error) {
	if days <= 0 || days > MaxWindowDays {
		return nil, ErrInvalidWindow
	}

	today := dayStart(time.Now())
	from := today.AddDate(0, 0, -(days - 1))

	var logs []models.DailyLog
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("time ASC")
		}).
		Preload("User").
		Where("date BETWEEN ? AND ?", from, today).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	lastDates, err := s.lastLogDates(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Summary:      buildSummary(logs),
		Series:       buildSeries(logs, today, days),
		Histogram:    buildHistogram(logs),
		UserActivity: buildUserActivity(users, logs, lastDates),
		RecentLogs:   buildRecentLogs(logs, 5),
		Days:         days,
	}, nil
}

// Most recent log date per user over all time, not just the window.
func (s *ReportService) lastLogDates(ctx context.Context) (map[uint]time.Time, error) {
	var rows []struct {
		UserID uint
		Last   time.Time
	}
	if err := s.db.WithContext(ctx).
		Model(&models.DailyLog{}).
		Select("user_id, MAX(date) AS last").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]time.Time, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Last
	}
	return out, nil
}

// ---------- Pure aggregation ----------

// buildSummary counts items and photos over every log in the window.
// activeDays is the number of distinct dates with at least one log;
// avgPerDay divides by it, 0 when there was no activity at all.
func buildSummary(logs []models.DailyLog) ReportSummary {
	totalItems := 0
	totalPhotos := 0
	dates := map[string]struct{}{}

	for _, l := range logs {
		dates[dateKey(l.Date)] = struct{}{}
		totalItems += len(l.Items)
		for _, it := range l.Items {
			if it.HasPhoto() {
				totalPhotos++
			}
		}
	}

	avg := 0
	if len(dates) > 0 {
		avg = int(math.Round(float64(totalItems) / float64(len(dates))))
	}

	return ReportSummary{
		TotalItems:  totalItems,
		TotalPhotos: totalPhotos,
		ActiveDays:  len(dates),
		AvgPerDay:   avg,
	}
}

// buildSeries walks the calendar range first and looks counts up
// second, so days without data show up as explicit zeros instead of
// being dropped. The result always has exactly `days` entries ending
// at today.
func buildSeries(logs []models.DailyLog, today time.Time, days int) []SeriesPoint {
	counts := map[string]int{}
	for _, l := range logs {
		counts[dateKey(l.Date)] += len(l.Items)
	}

	series := make([]SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := dateKey(d)
		series = append(series, SeriesPoint{Date: key, Count: counts[key]})
	}
	return series
}

// Fixed half-open hour ranges. Items before 06:00 or at/after 22:00
// land in no bucket; they still count in the summary.
var timeBuckets = []struct {
	name     string
	from, to int
}{
	{"Morning (06-10)", 6, 10},
	{"Midday (10-14)", 10, 14},
	{"Afternoon (14-18)", 14, 18},
	{"Evening (18-22)", 18, 22},
}

func buildHistogram(logs []models.DailyLog) []HistogramBucket {
	counts := make([]int, len(timeBuckets))
	for _, l := range logs {
		for _, it := range l.Items {
			hour := it.Hour()
			for i, b := range timeBuckets {
				if hour >= b.from && hour < b.to {
					counts[i]++
					break
				}
			}
		}
	}

	out := make([]HistogramBucket, len(timeBuckets))
	for i, b := range timeBuckets {
		out[i] = HistogramBucket{Name: b.name, Count: counts[i]}
	}
	return out
}

// buildUserActivity reports every user, including ones with no logs
// in the window (logCount 0) and ones who never logged at all
// (lastActivity empty).
func buildUserActivity(users []models.User, logs []models.DailyLog, lastDates map[uint]time.Time) []UserActivity {
	inWindow := map[uint]int{}
	for _, l := range logs {
		inWindow[l.UserID]++
	}

	out := make([]UserActivity, 0, len(users))
	for _, u := range users {
		last := ""
		if d, ok := lastDates[u.ID]; ok {
			last = dateKey(d)
		}
		out = append(out, UserActivity{
			ID:           u.ID,
			Name:         u.Name,
			Role:         u.Role,
			LogCount:     inWindow[u.ID],
			LastActivity: last,
		})
	}
	return out
}

// Latest n logs in the window, date descending.
func buildRecentLogs(logs []models.DailyLog, n int) []RecentLog {
	sorted := make([]models.DailyLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]RecentLog, 0, n)
	for _, l := range sorted[:n] {
		photos := 0
		for _, it := range l.Items {
			if it.HasPhoto() {
				photos++
			}
		}
		out = append(out, RecentLog{
			ID:         l.ID,
			Date:       dateKey(l.Date),
			UserName:   l.User.Name,
			ItemCount:  len(l.Items),
			PhotoCount: photos,
			UpdatedAt:  l.UpdatedAt,
		})
	}
	return out
}

// ---------- internals ----------

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
