// Package logout реализует HTTP-обработчик выхода из аккаунта.
// Операция идемпотентна и всегда завершается перенаправлением
// в анонимную зону, независимо от наличия сессии.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
)

// SessionManager завершает серверную сессию текущего клиента.
type SessionManager interface {
	Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	log      *slog.Logger
	sessions SessionManager
}

func New(log *slog.Logger, sessions SessionManager) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает сессию и перенаправляет в анонимную зону. Всегда успешен.
// @Tags Account
// @Success 303 "Сессия завершена"
// @Router /account/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.sessions.Clear(r.Context(), w, r); err != nil {
		// Клиент все равно уходит анонимным, cookie уже погашена
		log.Error("failed to clear session", sl.Err(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
