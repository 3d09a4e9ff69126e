// Package register реализует HTTP-обработчик регистрации нового аккаунта.
//
// Обработчик декодирует данные формы в типизированную структуру Request,
// валидирует их по явному набору правил и делегирует создание пользователя
// бизнес-логике. При успехе устанавливается серверная сессия и клиент
// перенаправляется в авторизованную зону.
package register

import (
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

// Request — входные данные формы регистрации.
type Request struct {
	Email           string `form:"email" validate:"required,email,max=256"`
	Password        string `form:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Name            string `form:"name" validate:"required,max=100"`
	Workplace       string `form:"workplace" validate:"max=200"`
	AboutSection    string `form:"about_section" validate:"max=1000"`
	Interests       string `form:"interests"`
}

type Handler struct {
	log      *slog.Logger
	accounts Service
	sessions SessionManager
	validate *validator.Validate
}

func New(log *slog.Logger, accounts Service, sessions SessionManager) *Handler {
	return &Handler{
		log:      log,
		accounts: accounts,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает аккаунт с профилем и списком интересов, устанавливает сессию.
// @Tags Account
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Электронная почта"
// @Param password formData string true "Пароль (6-100 символов)"
// @Param confirm_password formData string true "Подтверждение пароля"
// @Param name formData string true "Отображаемое имя"
// @Param workplace formData string false "Место работы"
// @Param about_section formData string false "О себе"
// @Param interests formData string false "Интересы через запятую"
// @Success 303 "Аккаунт создан, перенаправление в авторизованную зону"
// @Failure 400 {object} response.Response "Некорректное тело запроса"
// @Failure 422 {object} response.Response "Ошибки валидации по полям"
// @Failure 409 {object} response.Response "Email уже зарегистрирован"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /account/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.register"

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

	user, err := h.accounts.Register(r.Context(), account.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Workplace:    req.Workplace,
		AboutSection: req.AboutSection,
		Interests:    req.Interests,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			log.Info("registration rejected, email taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.FieldError("Email", "an account with this email already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create account, please try again"))
		return
	}

	if _, err := h.sessions.Establish(r.Context(), w, models.SessionData{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}); err != nil {
		log.Error("failed to establish session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create account, please try again"))
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
