// Package read реализует HTTP-обработчик для чтения объявления по ID.
package read

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

// Handler управляет HTTP-запросами на чтение объявления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения объявления.
type Service interface {
	Get(ctx context.Context, id string) (*models.Car, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить объявление
// @Description Возвращает объявление по его ID.
// @Tags Cars
// @Produce  json
// @Param carId path string true "ID объявления"
// @Success 200 {object} models.Car "Объявление"
// @Failure 400 {object} response.ErrorResponse "Объявление не найдено"
// @Router /api/car/{carId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	carID := chi.URLParam(r, "carId")

	car, err := h.service.Get(r.Context(), carID)
	if err != nil {
		log.Error("failed to get car", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot get car"))
		return
	}

	log.Info("car read", slog.String("id", carID))
	render.JSON(w, r, car)
}
