// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Новый пользователь получает кредитный баланс по умолчанию и сразу
// авторизуется: токен входа выдаётся в cookie loginToken.
package register

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

// Request — входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, password, fullname string) (*models.User, string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя с балансом по умолчанию и выдаёт cookie loginToken.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные нового пользователя"
// @Success 200 {object} models.User "Созданный пользователь"
// @Failure 401 {object} response.ErrorResponse "Ошибка регистрации"
// @Router /api/auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("cannot signup"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("cannot signup"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  middlewarectx.CookieName,
		Value: token,
		Path:  "/",
	})

	log.Info("user registered", slog.String("username", user.Username))
	render.JSON(w, r, user)
}
