// Package create реализует HTTP-обработчик для создания новых объявлений.
//
// Handler принимает JSON-запрос с данными объявления, валидирует их, извлекает
// идентичность пользователя из контекста, вызывает бизнес-логику создания
// и возвращает созданное объявление в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

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

// Handler управляет HTTP-запросами на создание новых объявлений.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания объявления,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания объявлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания объявления.
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
// @Summary Создать новое объявление
// @Description Создает новое объявление от имени текущего пользователя. Возвращает созданную запись.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Param request body models.DummyCar true "Данные нового объявления"
// @Success 200 {object} models.Car "Созданное объявление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка сохранения"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/car [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.create"
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

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("cannot add car"))
		return
	}

	car := models.Car{
		Vendor: req.Vendor,
		Speed:  req.Speed.Float64(),
		Price:  req.Price.Float64(),
	}
	saved, err := h.service.Save(r.Context(), car, identity)
	if err != nil {
		log.Error("failed to add car", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot add car"))
		return
	}

	log.Info("car created", slog.String("id", saved.ID))
	render.JSON(w, r, saved)
}
