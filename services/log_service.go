package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faisal-gif/project-daily-log/models"
	"github.com/faisal-gif/project-daily-log/utils"

	"gorm.io/gorm"
)

const LogsPerPage = 10

type LogService struct {
	db         *gorm.DB
	moderation *ModerationService
	hub        *RealtimeHub
}

func NewLogService(db *gorm.DB, moderation *ModerationService, hub *RealtimeHub) *LogService {
	return &LogService{db: db, moderation: moderation, hub: hub}
}

// One entry as submitted by the client. Photo is a base64 data URL,
// PhotoName the original client filename; both optional but paired.
type ItemDraft struct {
	Time        string `json:"time" binding:"required"`
	Description string `json:"description" binding:"required"`
	Notes       string `json:"notes"`
	Photo       string `json:"photo"`
	PhotoName   string `json:"photo_name"`
}

func ValidateItemDraft(d ItemDraft) error {
	if _, err := time.Parse("15:04", d.Time); err != nil {
		return fmt.Errorf("time must be HH:MM (24h): %q", d.Time)
	}
	if d.Description == "" {
		return errors.New("description must not be empty")
	}
	if d.Photo == "" && d.PhotoName != "" {
		return errors.New("photo_name given without photo data")
	}
	return nil
}

// StoreBatch resolves (or lazily creates) the owner's DailyLog for the
// date and appends all drafts as children in one transaction: either
// every item row persists or none do. Photos are committed to blob
// storage before the rows that reference them.
func (s *LogService) StoreBatch(ctx context.Context, userID uint, date string, drafts []ItemDraft) (*models.DailyLog, error) {
	if len(drafts) == 0 {
		return nil, errors.New("at least one item is required")
	}
	for _, d := range drafts {
		if err := ValidateItemDraft(d); err != nil {
			return nil, err
		}
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %q", date)
	}

	// Blob uploads happen up front so the transaction below only
	// touches the database. A failed upload aborts the whole batch.
	items := make([]models.LogItem, 0, len(drafts))
	for _, d := range drafts {
		item := models.LogItem{
			Time:        d.Time,
			Description: d.Description,
			Notes:       d.Notes,
		}
		if d.Photo != "" {
			url, key, err := s.storePhoto(ctx, d.Photo)
			if err != nil {
				return nil, err
			}
			item.PhotoURL = url
			item.PhotoKey = key
			item.PhotoName = d.PhotoName
		}
		items = append(items, item)
	}

	var dailyLog models.DailyLog
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(models.DailyLog{UserID: userID, Date: day}).
			FirstOrCreate(&dailyLog).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].DailyLogID = dailyLog.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastLogCreated(userID, date, len(items))
	}

	var populated models.DailyLog
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC") }).
		First(&populated, dailyLog.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *LogService) storePhoto(ctx context.Context, dataURL string) (url, key string, err error) {
	imageData, contentType, err := utils.DecodeBase64Image(dataURL)
	if err != nil {
		return "", "", err
	}
	if s.moderation != nil {
		if err := s.moderation.CheckImage(ctx, imageData); err != nil {
			return "", "", err
		}
	}
	return utils.UploadPhoto(imageData, contentType, "logs")
}

// List returns one page of the owner's logs, newest date first, items
// ordered by time of day.
func (s *LogService) List(ctx context.Context, userID uint, page int) ([]models.DailyLog, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&models.DailyLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.DailyLog
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC") }).
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset((page - 1) * LogsPerPage).
		Limit(LogsPerPage).
		Find(&logs).Error
	return logs, total, err
}

// Get fetches a single owner-scoped log. A log belonging to someone
// else is indistinguishable from a missing one: both return
// gorm.ErrRecordNotFound.
func (s *LogService) Get(ctx context.Context, userID, logID uint) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC") }).
		Where("user_id = ?", userID).
		First(&dailyLog, logID).Error
	if err != nil {
		return nil, err
	}
	return &dailyLog, nil
}

type ItemPatch struct {
	Time        string `json:"time" binding:"required"`
	Description string `json:"description" binding:"required"`
	Notes       string `json:"notes"`
	RemovePhoto bool   `json:"remove_photo"`
	Photo       string `json:"photo"`
	PhotoName   string `json:"photo_name"`
}

// UpdateItem edits the text fields of one item and optionally removes
// or replaces its photo. Deleting the previously stored blob is
// best-effort: a failed S3 delete never rolls back the row update.
func (s *LogService) UpdateItem(ctx context.Context, userID, logID, itemID uint, patch ItemPatch) (*models.LogItem, error) {
	if err := ValidateItemDraft(ItemDraft{
		Time:        patch.Time,
		Description: patch.Description,
		Photo:       patch.Photo,
		PhotoName:   patch.PhotoName,
	}); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, userID, logID); err != nil {
		return nil, err
	}

	var item models.LogItem
	if err := s.db.WithContext(ctx).
		Where("daily_log_id = ?", logID).
		First(&item, itemID).Error; err != nil {
		return nil, err
	}

	item.Time = patch.Time
	item.Description = patch.Description
	item.Notes = patch.Notes

	oldKey := ""
	if patch.RemovePhoto && item.PhotoKey != "" {
		oldKey = item.PhotoKey
		item.PhotoURL = ""
		item.PhotoKey = ""
		item.PhotoName = ""
	}

	if patch.Photo != "" {
		url, key, err := s.storePhoto(ctx, patch.Photo)
		if err != nil {
			return nil, err
		}
		if item.PhotoKey != "" {
			oldKey = item.PhotoKey
		}
		item.PhotoURL = url
		item.PhotoKey = key
		item.PhotoName = patch.PhotoName
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}

	if oldKey != "" {
		_ = utils.DeletePhoto(oldKey)
	}
	return &item, nil
}

func (s *LogService) DeleteItem(ctx context.Context, userID, logID, itemID uint) error {
	if _, err := s.Get(ctx, userID, logID); err != nil {
		return err
	}

	var item models.LogItem
	if err := s.db.WithContext(ctx).
		Where("daily_log_id = ?", logID).
		First(&item, itemID).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(&item).Error; err != nil {
		return err
	}
	if item.PhotoKey != "" {
		_ = utils.DeletePhoto(item.PhotoKey)
	}
	return nil
}

// DeleteLog removes a log and all of its items. Deletes are hard: a
// soft-deleted row would keep (user_id, date) occupied in the unique
// index and block relogging that date.
func (s *LogService) DeleteLog(ctx context.Context, userID, logID uint) error {
	dailyLog, err := s.Get(ctx, userID, logID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("daily_log_id = ?", logID).Delete(&models.LogItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.DailyLog{}, logID).Error
	})
	if err != nil {
		return err
	}

	for _, it := range dailyLog.Items {
		if it.PhotoKey != "" {
			_ = utils.DeletePhoto(it.PhotoKey)
		}
	}
	return nil
}
