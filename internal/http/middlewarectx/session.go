// Package middlewarectx содержит HTTP middleware для работы с серверной сессией.
//
// SessionMiddleware разрешает cookie с непрозрачным токеном в данные сессии
// и в случае успеха добавляет в контекст идентификатор, имя и email
// пользователя для дальнейшего использования в обработчиках.
//
// Запрос без действующей сессии считается анонимным и получает
// HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meetsync/internal/http/response"
	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
	"github.com/magabrotheeeer/meetsync/internal/models"
	"github.com/magabrotheeeer/meetsync/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// UserName — ключ для имени пользователя в контексте
	UserName Key = "user_name"
	// UserEmail — ключ для email пользователя в контексте
	UserEmail Key = "user_email"
)

// SessionReader читает данные сессии текущего клиента.
type SessionReader interface {
	Get(ctx context.Context, r *http.Request) (*models.SessionData, error)
}

// SessionMiddleware возвращает HTTP middleware, который разрешает сессию клиента.
//
// Если сессия действует, идентичность пользователя попадает в контекст запроса,
// иначе возвращается ошибка с HTTP статусом 401 Unauthorized.
func SessionMiddleware(sessions SessionReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Error("failed to resolve session", sl.Err(err))
				}
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, data.UserID)
			ctx = context.WithValue(ctx, UserName, data.Name)
			ctx = context.WithValue(ctx, UserEmail, data.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
