// Package update реализует HTTP-обработчик для обновления объявлений.
//
// Замена по ID разрешена только владельцу объявления; попытка изменить
// чужую запись завершается ошибкой без изменения данных.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// Handler управляет HTTP-запросами на обновление объявлений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сохранения объявления.
type Service interface {
	Save(ctx context.Context, car models.Car, acting models.UserIdentity) (*models.Car, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить объявление
// @Description Заменяет объявление по его ID. Разрешено только владельцу.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Param request body models.DummyCar true "Обновлённые данные объявления"
// @Success 200 {object} models.Car "Обновлённое объявление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка сохранения"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/car [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCar
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.ID == "" {
		log.Error("missing car id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot update car"))
		return
	}

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("cannot update car"))
		return
	}

	car := models.Car{
		ID:     req.ID,
		Vendor: req.Vendor,
		Speed:  req.Speed.Float64(),
		Price:  req.Price.Float64(),
	}
	if req.Owner != nil {
		car.Owner = *req.Owner
	}
	saved, err := h.service.Save(r.Context(), car, identity)
	if err != nil {
		log.Error("failed to update car", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot update car"))
		return
	}

	log.Info("car updated", slog.String("id", saved.ID))
	render.JSON(w, r, saved)
}
