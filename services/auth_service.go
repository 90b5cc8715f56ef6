package services

import (
	"errors"

	"github.com/faisal-gif/project-daily-log/config"
	"github.com/faisal-gif/project-daily-log/models"
	"github.com/faisal-gif/project-daily-log/utils"
)

func FindUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return user, errors.New("user not found")
	}
	return user, nil
}

// AuthenticateUser checks credentials and returns a signed JWT
// carrying the user's id and role.
func AuthenticateUser(email, password string) (string, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Email, user.Role)
}
