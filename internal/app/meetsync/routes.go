// Package meetsync собирает приложение сервиса аккаунтов и его маршруты.
package meetsync

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/meetsync/internal/http/handlers/account/login"
	"github.com/magabrotheeeer/meetsync/internal/http/handlers/account/logout"
	"github.com/magabrotheeeer/meetsync/internal/http/handlers/account/profile"
	"github.com/magabrotheeeer/meetsync/internal/http/handlers/account/register"
	"github.com/magabrotheeeer/meetsync/internal/http/middlewarectx"
	accountservice "github.com/magabrotheeeer/meetsync/internal/services/account"
	"github.com/magabrotheeeer/meetsync/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, accountService *accountservice.Service, sessions *session.Manager) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/account/register", register.New(logger, accountService, sessions).ServeHTTP)
		r.Post("/account/login", login.New(logger, accountService, sessions).ServeHTTP)
		// Выход идемпотентен и доступен любым методом
		r.HandleFunc("/account/logout", logout.New(logger, sessions).ServeHTTP)

		// Группа, требующая действующей сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessions, logger))
			r.Get("/account/me", profile.New(logger, accountService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
