package services

import (
	"context"
	"testing"
	"time"

	"github.com/faisal-gif/project-daily-log/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func logWithItems(userID uint, day string, times ...string) models.DailyLog {
	l := models.DailyLog{UserID: userID, Date: date(day)}
	for _, tm := range times {
		l.Items = append(l.Items, models.LogItem{Time: tm, Description: "activity at " + tm})
	}
	return l
}

func TestBuildSeries_ZeroFillsMissingDays(t *testing.T) {
	today := date("2024-06-10")
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-08", "08:00", "09:00"),
		logWithItems(1, "2024-06-10", "07:15"),
	}

	series := buildSeries(logs, today, 7)

	if len(series) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(series))
	}
	if series[6].Date != "2024-06-10" {
		t.Errorf("series must end at today, got %s", series[6].Date)
	}
	for i := 1; i < len(series); i++ {
		prev := date(series[i-1].Date)
		cur := date(series[i].Date)
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Errorf("dates not consecutive at %d: %s -> %s", i, series[i-1].Date, series[i].Date)
		}
	}
	for _, p := range series {
		switch p.Date {
		case "2024-06-08":
			if p.Count != 2 {
				t.Errorf("2024-06-08: expected 2, got %d", p.Count)
			}
		case "2024-06-10":
			if p.Count != 1 {
				t.Errorf("2024-06-10: expected 1, got %d", p.Count)
			}
		default:
			if p.Count != 0 {
				t.Errorf("%s: expected explicit zero, got %d", p.Date, p.Count)
			}
		}
	}
}

func TestBuildSeries_SumsLogsAcrossUsersOnSameDate(t *testing.T) {
	today := date("2024-06-10")
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-10", "08:00"),
		logWithItems(2, "2024-06-10", "09:00", "10:00"),
	}

	series := buildSeries(logs, today, 1)
	if len(series) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(series))
	}
	if series[0].Count != 3 {
		t.Errorf("expected all logs on the date to count, got %d", series[0].Count)
	}
}

func TestBuildSummary(t *testing.T) {
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-08", "08:00", "09:00", "10:00"),
		logWithItems(1, "2024-06-10", "07:15"),
	}
	logs[1].Items[0].PhotoURL = "https://cdn.example.com/logs/1.jpg"

	sum := buildSummary(logs)

	if sum.TotalItems != 4 {
		t.Errorf("totalItems: expected 4, got %d", sum.TotalItems)
	}
	if sum.TotalPhotos != 1 {
		t.Errorf("totalPhotos: expected 1, got %d", sum.TotalPhotos)
	}
	if sum.ActiveDays != 2 {
		t.Errorf("activeDays: expected 2, got %d", sum.ActiveDays)
	}
	if sum.AvgPerDay != 2 {
		t.Errorf("avgPerDay: expected round(4/2)=2, got %d", sum.AvgPerDay)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	sum := buildSummary(nil)
	if sum.ActiveDays != 0 || sum.AvgPerDay != 0 {
		t.Errorf("empty window must give activeDays=0 avgPerDay=0, got %+v", sum)
	}
}

func TestBuildSummary_AvgRoundsToNearest(t *testing.T) {
	// 5 items over 2 active days: 2.5 rounds to 3.
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-08", "08:00", "09:00", "10:00"),
		logWithItems(1, "2024-06-09", "08:00", "09:00"),
	}
	if got := buildSummary(logs).AvgPerDay; got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestTotalItemsEqualsSeriesSum(t *testing.T) {
	today := date("2024-06-10")
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-05", "05:30"),
		logWithItems(1, "2024-06-08", "08:00", "23:00"),
		logWithItems(2, "2024-06-10", "12:00"),
	}

	sum := buildSummary(logs)
	series := buildSeries(logs, today, 7)

	got := 0
	for _, p := range series {
		got += p.Count
	}
	if got != sum.TotalItems {
		t.Errorf("series sum %d != totalItems %d", got, sum.TotalItems)
	}
}

func TestBuildHistogram_BucketBoundaries(t *testing.T) {
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-10",
			"05:59", // no bucket
			"06:00", // Morning
			"09:59", // Morning
			"10:00", // Midday
			"13:59", // Midday
			"14:00", // Afternoon
			"18:00", // Evening
			"21:59", // Evening
			"22:00", // no bucket
			"23:30", // no bucket
		),
	}

	hist := buildHistogram(logs)
	if len(hist) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(hist))
	}

	want := map[string]int{
		"Morning (06-10)":   2,
		"Midday (10-14)":    2,
		"Afternoon (14-18)": 1,
		"Evening (18-22)":   2,
	}
	total := 0
	for _, b := range hist {
		if b.Count != want[b.Name] {
			t.Errorf("%s: expected %d, got %d", b.Name, want[b.Name], b.Count)
		}
		total += b.Count
	}

	// Off-hours items are silently excluded from the histogram but
	// still counted in the summary.
	sum := buildSummary(logs)
	if total >= sum.TotalItems {
		t.Errorf("expected bucket total %d < totalItems %d (3 off-hours items)", total, sum.TotalItems)
	}
	if sum.TotalItems-total != 3 {
		t.Errorf("expected 3 unbucketed items, got %d", sum.TotalItems-total)
	}
}

func TestBuildHistogram_FixedOrder(t *testing.T) {
	hist := buildHistogram(nil)
	order := []string{"Morning (06-10)", "Midday (10-14)", "Afternoon (14-18)", "Evening (18-22)"}
	for i, b := range hist {
		if b.Name != order[i] {
			t.Errorf("bucket %d: expected %s, got %s", i, order[i], b.Name)
		}
		if b.Count != 0 {
			t.Errorf("bucket %s: expected 0, got %d", b.Name, b.Count)
		}
	}
}

// The worked dashboard example: 3-day window ending 2024-06-10, logs
// on 06-08 (2 items) and 06-10 (07:15 and 23:00).
func TestReportExample(t *testing.T) {
	today := date("2024-06-10")
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-08", "08:00", "15:00"),
		logWithItems(1, "2024-06-10", "07:15", "23:00"),
	}

	series := buildSeries(logs, today, 3)
	wantSeries := []SeriesPoint{
		{Date: "2024-06-08", Count: 2},
		{Date: "2024-06-09", Count: 0},
		{Date: "2024-06-10", Count: 2},
	}
	for i, w := range wantSeries {
		if series[i] != w {
			t.Errorf("series[%d]: expected %+v, got %+v", i, w, series[i])
		}
	}

	sum := buildSummary(logs)
	if sum.TotalItems != 4 || sum.ActiveDays != 2 || sum.AvgPerDay != 2 {
		t.Errorf("unexpected summary %+v", sum)
	}

	hist := buildHistogram([]models.DailyLog{logs[1]})
	if hist[0].Count != 1 {
		t.Errorf("07:15 should land in Morning, got %d", hist[0].Count)
	}
	for _, b := range hist[1:] {
		if b.Count != 0 {
			t.Errorf("%s should be empty (23:00 has no bucket), got %d", b.Name, b.Count)
		}
	}
}

func TestBuildUserActivity(t *testing.T) {
	users := []models.User{
		{Name: "Andi", Role: models.RoleStaff},
		{Name: "Budi", Role: models.RoleStaff},
		{Name: "Citra", Role: models.RoleViewer},
	}
	users[0].ID = 1
	users[1].ID = 2
	users[2].ID = 3

	windowLogs := []models.DailyLog{
		logWithItems(1, "2024-06-09", "08:00"),
		logWithItems(1, "2024-06-10", "09:00"),
	}
	lastDates := map[uint]time.Time{
		1: date("2024-06-10"),
		2: date("2024-01-05"), // only activity before the window
	}

	activity := buildUserActivity(users, windowLogs, lastDates)
	if len(activity) != 3 {
		t.Fatalf("every user must appear, got %d rows", len(activity))
	}

	byID := map[uint]UserActivity{}
	for _, a := range activity {
		byID[a.ID] = a
	}

	if byID[1].LogCount != 2 || byID[1].LastActivity != "2024-06-10" {
		t.Errorf("user 1: got %+v", byID[1])
	}
	if byID[2].LogCount != 0 {
		t.Errorf("user 2 has no logs in window, got count %d", byID[2].LogCount)
	}
	if byID[2].LastActivity != "2024-01-05" {
		t.Errorf("user 2 last activity must be their true last date, got %q", byID[2].LastActivity)
	}
	if byID[3].LogCount != 0 || byID[3].LastActivity != "" {
		t.Errorf("user 3 never logged: got %+v", byID[3])
	}
}

func TestBuildRecentLogs(t *testing.T) {
	logs := []models.DailyLog{
		logWithItems(1, "2024-06-05", "08:00"),
		logWithItems(1, "2024-06-09", "09:00", "10:00"),
		logWithItems(2, "2024-06-10", "11:00"),
		logWithItems(1, "2024-06-07", "12:00"),
	}
	logs[2].Items[0].PhotoURL = "https://cdn.example.com/logs/2.jpg"

	recent := buildRecentLogs(logs, 3)
	if len(recent) != 3 {
		t.Fatalf("expected 3, got %d", len(recent))
	}
	if recent[0].Date != "2024-06-10" || recent[1].Date != "2024-06-09" || recent[2].Date != "2024-06-07" {
		t.Errorf("expected date-descending order, got %s %s %s", recent[0].Date, recent[1].Date, recent[2].Date)
	}
	if recent[0].PhotoCount != 1 || recent[0].ItemCount != 1 {
		t.Errorf("unexpected counts %+v", recent[0])
	}
}

func TestReport_InvalidWindow(t *testing.T) {
	svc := NewReportService(nil)
	for _, days := range []int{0, -1, MaxWindowDays + 1} {
		if _, err := svc.Report(context.Background(), days); err != ErrInvalidWindow {
			t.Errorf("days=%d: expected ErrInvalidWindow, got %v", days, err)
		}
	}
}
