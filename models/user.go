package models

import (
    "gorm.io/gorm"
)

const (
    RoleAdmin  = "admin"
    RoleStaff  = "staff"
    RoleViewer = "viewer"
)

type User struct {
    gorm.Model
    Name      string     `gorm:"not null" json:"name"`
    Email     string     `gorm:"uniqueIndex;not null" json:"email"`
    Password  string     `gorm:"not null" json:"-"`
    Role      string     `gorm:"not null;default:staff" json:"role"`
    AvatarURL string     `json:"avatar_url"`
    AvatarKey string     `json:"-"` // storage key, needed to delete the old blob on replace
    DailyLogs []DailyLog `json:"-"`
}

func ValidRole(role string) bool {
    return role == RoleAdmin || role == RoleStaff || role == RoleViewer
}
