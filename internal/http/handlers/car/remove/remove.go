// Package remove реализует HTTP-обработчик для удаления объявлений.
//
// Удаление разрешено только владельцу объявления. В ответе возвращается
// сообщение и ID удалённой записи.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// Handler управляет HTTP-запросами на удаление объявлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления объявления.
type Service interface {
	Remove(ctx context.Context, id string, acting models.UserIdentity) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить объявление
// @Description Удаляет объявление по его ID. Разрешено только владельцу.
// @Tags Cars
// @Produce  json
// @Param carId path string true "ID объявления"
// @Success 200 {object} map[string]any "Сообщение и ID удалённой записи"
// @Failure 400 {object} response.ErrorResponse "Объявление не найдено или принадлежит другому пользователю"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/car/{carId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("cannot delete car"))
		return
	}

	carID := chi.URLParam(r, "carId")

	if err := h.service.Remove(r.Context(), carID, identity); err != nil {
		log.Error("failed to delete car", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot delete car"))
		return
	}

	log.Info("car removed", slog.String("id", carID))
	render.JSON(w, r, map[string]any{
		"msg":   "car removed",
		"carId": carID,
	})
}
