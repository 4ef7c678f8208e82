// Package list реализует HTTP-обработчик для выборки объявлений по фильтру.
//
// Handler принимает необязательные query-параметры txt (подстрока производителя,
// без учёта регистра) и maxPrice (верхняя граница цены), вызывает бизнес-логику
// и возвращает массив объявлений в JSON-формате.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// Handler управляет HTTP-запросами на выборку объявлений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для работы с объявлениями
}

// Service описывает интерфейс бизнес-логики выборки объявлений.
type Service interface {
	List(ctx context.Context, filter models.CarFilter) ([]*models.Car, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список объявлений
// @Description Возвращает объявления, отфильтрованные по подстроке производителя и максимальной цене.
// @Tags Cars
// @Produce  json
// @Param txt query string false "Подстрока производителя"
// @Param maxPrice query number false "Максимальная цена"
// @Success 200 {array} models.Car "Список объявлений"
// @Failure 400 {object} response.ErrorResponse "Ошибка загрузки объявлений"
// @Router /api/car [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.CarFilter{Txt: r.URL.Query().Get("txt")}
	// Нечисловой maxPrice эквивалентен отсутствию фильтра по цене.
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		if maxPrice, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &maxPrice
		}
	}

	cars, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to load cars", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot load cars"))
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}

	log.Info("cars listed", slog.Int("count", len(cars)))
	render.JSON(w, r, cars)
}
