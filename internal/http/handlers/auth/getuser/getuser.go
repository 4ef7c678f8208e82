// Package getuser реализует HTTP-обработчик для чтения профиля пользователя по ID.
package getuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// Handler управляет HTTP-запросами на чтение профиля пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	GetByID(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя
// @Description Возвращает профиль пользователя по его ID. Хэш пароля не сериализуется.
// @Tags Auth
// @Produce  json
// @Param userId path string true "ID пользователя"
// @Success 200 {object} models.User "Пользователь"
// @Failure 400 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/auth/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.getuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "userId")

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot get user"))
		return
	}

	log.Info("user read", slog.String("id", userID))
	render.JSON(w, r, user)
}
