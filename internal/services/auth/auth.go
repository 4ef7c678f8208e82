// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/car-market/internal/lib/jwt"
	"github.com/magabrotheeeer/car-market/internal/lib/password"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// DefaultScore — кредитный баланс, выдаваемый при регистрации.
const DefaultScore = 100

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInsufficientCredit возвращается, когда списание увело бы баланс ниже нуля.
	ErrInsufficientCredit = errors.New("insufficient credit")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserScore сохраняет новый кредитный баланс.
	UpdateUserScore(ctx context.Context, userUID string, score int) error
}

// AuthService отвечает за регистрацию, авторизацию, валидацию токена
// и охраняемое изменение кредитного баланса.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и балансом по умолчанию.
// Возвращает созданного пользователя и токен входа.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, fullname string) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Fullname:     fullname,
		Score:        DefaultScore,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.IssueToken(user.Identity())
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и выпускает токен входа.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.IssueToken(user.Identity())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken выпускает подписанный токен входа для идентичности.
func (s *AuthService) IssueToken(identity models.UserIdentity) (string, error) {
	return s.jwtMaker.GenerateToken(identity.UID, identity.Username, identity.Fullname, identity.IsAdmin)
}

// ValidateToken проверяет токен и возвращает зашитую в него идентичность.
// Любой чужой, повреждённый или пустой токен — ошибка, не паника.
func (s *AuthService) ValidateToken(token string) (*models.UserIdentity, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	identity := claims.Identity()
	return &identity, nil
}

// GetByID возвращает пользователя по его UID.
func (s *AuthService) GetByID(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// AdjustScore изменяет кредитный баланс пользователя на diff.
// Баланс никогда не опускается ниже нуля: такое списание завершается
// ErrInsufficientCredit, запись остаётся без изменений.
// При успехе выпускается свежий токен входа.
func (s *AuthService) AdjustScore(ctx context.Context, userUID string, diff int) (*models.User, string, error) {
	const op = "services.AdjustScore"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if user.Score+diff < 0 {
		return nil, "", ErrInsufficientCredit
	}
	user.Score += diff
	if err := s.users.UpdateUserScore(ctx, user.UID, user.Score); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.IssueToken(user.Identity())
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}
