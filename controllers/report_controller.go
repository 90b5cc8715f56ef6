package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/faisal-gif/project-daily-log/services"

	"github.com/gin-gonic/gin"
)

// DateFormatter localizes chart labels. It is passed to the controller
// explicitly instead of living in process-wide locale state, so the
// aggregation output itself stays locale-free.
type DateFormatter struct {
	Days   [7]string  // indexed by time.Weekday (Sunday first)
	Months [12]string // indexed by time.Month - 1
}

func (f DateFormatter) DayName(t time.Time) string { return f.Days[int(t.Weekday())] }

func (f DateFormatter) ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), f.Months[int(t.Month())-1])
}

func (f DateFormatter) LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), f.Months[int(t.Month())-1], t.Year())
}

// The deployment runs in Indonesian.
var IndonesianFormat = DateFormatter{
	Days:   [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"},
	Months: [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
}

type ReportController struct {
	Reports *services.ReportService
	Format  DateFormatter
}

func NewReportController(reports *services.ReportService, format DateFormatter) *ReportController {
	return &ReportController{Reports: reports, Format: format}
}

// A series point decorated with display labels for the chart.
type ChartPoint struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	FullDate string `json:"fullDate"`
	Count    int    `json:"count"`
}

type userActivityRow struct {
	services.UserActivity
	LastActivityLabel string `json:"lastActivityLabel"`
}

// GET /admin/reports?period=week|month
func (rc *ReportController) Index(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	days := 7
	if period == "month" {
		days = 30
	}

	report, err := rc.Reports.Report(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	chart := make([]ChartPoint, 0, len(report.Series))
	for _, p := range report.Series {
		d, _ := time.Parse("2006-01-02", p.Date)
		chart = append(chart, ChartPoint{
			Day:      rc.Format.DayName(d),
			Date:     rc.Format.ShortDate(d),
			FullDate: p.Date,
			Count:    p.Count,
		})
	}

	activity := make([]userActivityRow, 0, len(report.UserActivity))
	for _, ua := range report.UserActivity {
		label := "-"
		if ua.LastActivity != "" {
			d, _ := time.Parse("2006-01-02", ua.LastActivity)
			label = rc.Format.LongDate(d)
		}
		activity = append(activity, userActivityRow{UserActivity: ua, LastActivityLabel: label})
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":        report.Summary,
		"chartData":      chart,
		"activityByTime": report.Histogram,
		"userActivity":   activity,
		"recentLogs":     report.RecentLogs,
		"filters":        gin.H{"period": period},
	})
}
