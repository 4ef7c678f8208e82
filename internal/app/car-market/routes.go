// Package carmarket предоставляет маршруты для основного приложения.
package carmarket

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/car-market/internal/config"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/auth/getuser"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/car/create"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/car/list"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/car/read"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/car/remove"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/car/update"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/health"
	"github.com/magabrotheeeer/car-market/internal/http/handlers/user/score"
	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/car-market/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-market/internal/services/car"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, authService *authservice.AuthService, carService *carservice.CarService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/car", list.New(logger, carService).ServeHTTP)
		r.Get("/car/{carId}", read.New(logger, carService).ServeHTTP)
		r.Get("/auth/{userId}", getuser.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/signup", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с аутентификацией по cookie loginToken
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/car", create.New(logger, carService).ServeHTTP)
			r.Put("/car", update.New(logger, carService).ServeHTTP)
			r.Delete("/car/{carId}", remove.New(logger, carService).ServeHTTP)
			r.Put("/user", score.New(logger, authService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Статика фронтенда: неизвестные пути получают index.html.
	r.Get("/*", staticHandler(cfg.StaticDir))
}

func staticHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		fileServer.ServeHTTP(w, r)
	}
}
