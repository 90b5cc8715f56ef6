package utils

import (
    "time"
    "github.com/golang-jwt/jwt/v5"
    "os"
)

func GenerateJWT(userID uint, email, role string) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "userId": userID,
        "email":  email,
        "role":   role,
        "exp":    time.Now().Add(time.Hour * 72).Unix(),
    })

    return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
