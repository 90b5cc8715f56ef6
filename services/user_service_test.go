package services

import (
	"context"
	"testing"

	"github.com/faisal-gif/project-daily-log/config"
	"github.com/faisal-gif/project-daily-log/models"
)

// An admin deleting an account and recreating it with the same email
// is a normal flow; the deleted row may not keep the unique email
// index occupied.
func TestDeleteUser_FreesEmailForReuse(t *testing.T) {
	config.DB = newTestDB(t)

	user := models.User{Name: "Andi", Email: "andi@gudang.id", Password: "x", Role: models.RoleStaff}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := DeleteUser(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	again := models.User{Name: "Andi", Email: "andi@gudang.id", Password: "x", Role: models.RoleStaff}
	if err := config.DB.Create(&again).Error; err != nil {
		t.Fatalf("recreating a deleted user's email failed: %v", err)
	}
	if again.ID == user.ID {
		t.Error("expected a fresh user row")
	}
}

func TestDeleteOwnAccount_RemovesLogsAndFreesEmail(t *testing.T) {
	config.DB = newTestDB(t)

	user := models.User{Name: "Budi", Email: "budi@gudang.id", Password: "x", Role: models.RoleStaff}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewLogService(config.DB, nil, nil)
	if _, err := svc.StoreBatch(context.Background(), user.ID, "2024-06-10", []ItemDraft{
		{Time: "08:00", Description: "unloading truck"},
	}); err != nil {
		t.Fatalf("store: %v", err)
	}

	if err := DeleteOwnAccount(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var logs, items, users int64
	config.DB.Unscoped().Model(&models.DailyLog{}).Where("user_id = ?", user.ID).Count(&logs)
	config.DB.Unscoped().Model(&models.LogItem{}).Count(&items)
	config.DB.Unscoped().Model(&models.User{}).Where("email = ?", user.Email).Count(&users)
	if logs != 0 || items != 0 || users != 0 {
		t.Errorf("expected everything gone, got logs=%d items=%d users=%d", logs, items, users)
	}

	again := models.User{Name: "Budi", Email: "budi@gudang.id", Password: "x", Role: models.RoleStaff}
	if err := config.DB.Create(&again).Error; err != nil {
		t.Fatalf("recreating a deleted account's email failed: %v", err)
	}
}
