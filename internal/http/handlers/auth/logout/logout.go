// Package logout реализует HTTP-обработчик выхода из системы.
//
// Выход — это просто сброс cookie loginToken: сервер не хранит сессий
// и списка отозванных токенов.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Сбрасывает cookie loginToken.
// @Tags Auth
// @Produce  plain
// @Success 200 {string} string "logged-out!"
// @Router /api/auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, &http.Cookie{
		Name:   middlewarectx.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	log.Info("user logged out")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("logged-out!"))
}
