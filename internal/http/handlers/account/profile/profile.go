// Package profile реализует HTTP-обработчик чтения профиля текущего пользователя.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meetsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meetsync/internal/http/response"
	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
	"github.com/magabrotheeeer/meetsync/internal/services/account"
)

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*account.Profile, error)
}

type Handler struct {
	log      *slog.Logger
	accounts Service
}

func New(log *slog.Logger, accounts Service) *Handler {
	return &Handler{
		log:      log,
		accounts: accounts,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль и интересы пользователя из сессии.
// @Tags Account
// @Produce json
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.Response "Нет действующей сессии"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /account/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok {
		log.Error("user id missing in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	profile, err := h.accounts.GetProfile(r.Context(), userID)
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":            profile.User.ID,
		"email":         profile.User.Email,
		"name":          profile.User.Name,
		"workplace":     profile.User.Workplace,
		"about_section": profile.User.AboutSection,
		"created_at":    profile.User.CreatedAt,
		"last_login_at": profile.User.LastLoginAt,
		"interests":     profile.Interests,
	}))
}
