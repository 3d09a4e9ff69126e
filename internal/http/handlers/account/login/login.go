// Package login реализует HTTP-обработчик для входа пользователей.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование формы, проверка и валидация полей, а также делегирование
// проверки учетных данных бизнес-логике. При успешном входе устанавливается
// серверная сессия и клиент перенаправляется в авторизованную зону.
// Неизвестный email и неверный пароль дают один и тот же ответ.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/meetsync/internal/http/response"
	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
	"github.com/magabrotheeeer/meetsync/internal/models"
	"github.com/magabrotheeeer/meetsync/internal/services/account"
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger
	accounts Service
	sessions SessionManager
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// SessionManager устанавливает серверную сессию для клиента.
type SessionManager interface {
	Establish(ctx context.Context, w http.ResponseWriter, data models.SessionData) (string, error)
}

// New создает новый экземпляр Handler с указанными логгером, бизнес-логикой и сессиями.
func New(log *slog.Logger, accounts Service, sessions SessionManager) *Handler {
	return &Handler{
		log:      log,
		accounts: accounts,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, при успехе устанавливает сессию.
// @Tags Account
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Электронная почта"
// @Param password formData string true "Пароль"
// @Success 303 "Успешный вход, перенаправление в авторизованную зону"
// @Failure 400 {object} response.Response "Некорректное тело запроса"
// @Failure 422 {object} response.Response "Ошибки валидации по полям"
// @Failure 401 {object} response.Response "Неверные учетные данные"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /account/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			log.Info("login rejected")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("something went wrong, please try again"))
		return
	}

	if _, err := h.sessions.Establish(r.Context(), w, models.SessionData{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}); err != nil {
		log.Error("failed to establish session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("something went wrong, please try again"))
		return
	}

	log.Info("login success", slog.Int64("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
