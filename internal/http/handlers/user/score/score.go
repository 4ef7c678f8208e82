// Package score реализует HTTP-обработчик изменения кредитного баланса.
//
// Баланс пользователя изменяется на diff из тела запроса, но никогда
// не опускается ниже нуля: такое списание завершается ошибкой 400,
// запись остаётся без изменений. При успехе cookie loginToken обновляется
// свежим токеном.
package score

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-market/internal/http/response"
	"github.com/magabrotheeeer/car-market/internal/lib/sl"
	"github.com/magabrotheeeer/car-market/internal/models"
	authservices "github.com/magabrotheeeer/car-market/internal/services/auth"
)

// Request — входные данные изменения баланса.
type Request struct {
	Diff int `json:"diff"`
}

// Handler обрабатывает HTTP-запросы изменения баланса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики изменения баланса.
type Service interface {
	AdjustScore(ctx context.Context, userUID string, diff int) (*models.User, string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить кредитный баланс
// @Description Изменяет баланс текущего пользователя на diff. Баланс не может стать отрицательным.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Изменение баланса"
// @Success 200 {object} models.User "Обновлённый пользователь"
// @Failure 400 {object} response.ErrorResponse "Недостаточно кредита"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/user [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.score"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no logged in user"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, token, err := h.service.AdjustScore(r.Context(), identity.UID, req.Diff)
	if err != nil {
		if errors.Is(err, authservices.ErrInsufficientCredit) {
			log.Error("insufficient credit", slog.Int("diff", req.Diff))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no credit"))
			return
		}
		log.Error("failed to adjust score", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot update user"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  middlewarectx.CookieName,
		Value: token,
		Path:  "/",
	})

	log.Info("score adjusted", slog.String("user", user.Username), slog.Int("score", user.Score))
	render.JSON(w, r, user)
}
