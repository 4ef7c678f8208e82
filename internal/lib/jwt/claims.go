package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/car-market/internal/models"
)

// CustomClaims описывает идентичность пользователя, хранящуюся в токене.
type CustomClaims struct {
	UID                  string `json:"uid"`               // Идентификатор пользователя
	Username             string `json:"username"`          // Имя пользователя
	Fullname             string `json:"fullname"`          // Отображаемое имя
	IsAdmin              bool   `json:"isAdmin,omitempty"` // Признак администратора
	jwt.RegisteredClaims        // Стандартные claims JWT (заполняется только IssuedAt)
}

// Identity конвертирует claims в доменную идентичность.
func (c *CustomClaims) Identity() models.UserIdentity {
	return models.UserIdentity{
		UID:      c.UID,
		Username: c.Username,
		Fullname: c.Fullname,
		IsAdmin:  c.IsAdmin,
	}
}

// GenerateToken создает токен с заданной идентичностью, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(uid, username, fullname string, isAdmin bool) (string, error) {
	claims := CustomClaims{
		UID:      uid,
		Username: username,
		Fullname: fullname,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
