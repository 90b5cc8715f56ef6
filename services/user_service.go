package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/faisal-gif/project-daily-log/config"
	"github.com/faisal-gif/project-daily-log/models"
	"github.com/faisal-gif/project-daily-log/utils"
)

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Avatar   string `json:"avatar"` // base64 data URL, optional
}

type UpdateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"` // empty keeps the current one
	Avatar   string `json:"avatar"`
}

func ListUsers() ([]models.User, error) {
	var users []models.User
	err := config.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}

// CreateUser is the admin path: new accounts get admin or staff roles
// only (viewers are demoted existing accounts, never created as such).
// A welcome email goes out after commit, best-effort.
func CreateUser(input CreateUserInput) (*models.User, error) {
	if input.Role != models.RoleAdmin && input.Role != models.RoleStaff {
		return nil, errors.New("role must be admin or staff")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}

	if input.Avatar != "" {
		url, key, err := utils.UploadBase64Photo(input.Avatar, "avatars")
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %v", err)
		}
		user.AvatarURL = url
		user.AvatarKey = key
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := utils.SendWelcomeEmail(user.Email, user.Name); err != nil {
		log.Printf("welcome email to %s failed: %v", user.Email, err)
	}
	return &user, nil
}

func UpdateUser(userID uint, input UpdateUserInput) (*models.User, error) {
	if !models.ValidRole(input.Role) {
		return nil, errors.New("invalid role")
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Role = input.Role

	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if input.Avatar != "" {
		oldKey := user.AvatarKey
		url, key, err := utils.UploadBase64Photo(input.Avatar, "avatars")
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %v", err)
		}
		user.AvatarURL = url
		user.AvatarKey = key
		if oldKey != "" {
			_ = utils.DeletePhoto(oldKey)
		}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account for good. Hard delete: the unique
// index on email still covers soft-deleted rows, which would block
// recreating an account with the same address.
func DeleteUser(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	if err := config.DB.Unscoped().Delete(&user).Error; err != nil {
		return err
	}
	if user.AvatarKey != "" {
		_ = utils.DeletePhoto(user.AvatarKey)
	}
	return nil
}

type ProfileInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func GetUserProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// UpdateUserProfile lets a signed-in user change their own name,
// email or password. Role changes stay admin-only.
func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}

	return config.DB.Save(&user).Error
}

// DeleteOwnAccount removes the user together with all of their logs
// and items. Hard deletes throughout, same reason as DeleteUser: the
// email and (user_id, date) unique indexes must be freed.
func DeleteOwnAccount(userID uint) error {
	var logs []models.DailyLog
	if err := config.DB.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return err
	}
	for _, l := range logs {
		if err := config.DB.Unscoped().Where("daily_log_id = ?", l.ID).Delete(&models.LogItem{}).Error; err != nil {
			return err
		}
	}
	if err := config.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.DailyLog{}).Error; err != nil {
		return err
	}
	return config.DB.Unscoped().Delete(&models.User{}, userID).Error
}
