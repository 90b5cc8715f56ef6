package models

import (
	"time"

	"gorm.io/gorm"
)

// One calendar day of warehouse activity for one user. At most one
// row per (user, date): the unique index is scoped per owner, the
// get-or-create in LogService relies on it.
type DailyLog struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:uidx_daily_logs_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"type:date;uniqueIndex:uidx_daily_logs_user_date;index;not null" json:"date"`
	User   User      `json:"user,omitempty"`
	Items  []LogItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// One timestamped entry inside a DailyLog. Time is wall-clock "HH:MM"
// relative to the parent log's date. PhotoURL/PhotoKey/PhotoName are
// set together or all empty.
type LogItem struct {
	gorm.Model
	DailyLogID  uint   `gorm:"index;not null" json:"daily_log_id"`
	Time        string `gorm:"type:varchar(5);not null" json:"time"`
	Description string `gorm:"type:text;not null" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`
	PhotoURL    string `gorm:"type:text" json:"photo_url"`
	PhotoKey    string `gorm:"type:text" json:"-"`
	PhotoName   string `gorm:"type:text" json:"photo_name"`
}

func (i LogItem) HasPhoto() bool { return i.PhotoURL != "" }

// Hour component of Time, or -1 if the value is malformed.
func (i LogItem) Hour() int {
	t, err := time.Parse("15:04", i.Time)
	if err != nil {
		return -1
	}
	return t.Hour()
}
