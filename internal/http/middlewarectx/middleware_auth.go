// Package middlewarectx содержит HTTP middleware для проверки токена входа.
//
// AuthMiddleware проверяет наличие и валидность токена в cookie loginToken,
// и в случае успеха добавляет в контекст идентичность пользователя для
// дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// CookieName — имя cookie, в которой клиент хранит токен входа.
const CookieName = "loginToken"

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для идентичности пользователя в контексте.
const User Key = "user"

// TokenValidator описывает интерфейс сервиса для валидации токена входа.
type TokenValidator interface {
	ValidateToken(token string) (*models.UserIdentity, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен в cookie.
//
// Если токен валиден, добавляет идентичность пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authService TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				log.Error("missing login token cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not logged in"))
				return
			}

			identity, err := authService.ValidateToken(cookie.Value)
			if err != nil {
				log.Error("invalid login token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not logged in"))
				return
			}

			ctx := context.WithValue(r.Context(), User, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity извлекает идентичность пользователя из контекста запроса.
func Identity(ctx context.Context) (models.UserIdentity, bool) {
	identity, ok := ctx.Value(User).(models.UserIdentity)
	return identity, ok
}
