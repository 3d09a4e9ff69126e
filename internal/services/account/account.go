// Package account содержит логику бизнес-уровня для регистрации и входа пользователей.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/meetsync/internal/lib/password"
	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
	"github.com/magabrotheeeer/meetsync/internal/models"
	"github.com/magabrotheeeer/meetsync/internal/storage/repository"
)

// ErrEmailTaken означает, что аккаунт с таким email уже существует.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials возвращается при неизвестном email или неверном пароле.
// Причины намеренно не различаются, чтобы не допустить перебор аккаунтов.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// FindUserByEmail возвращает пользователя по email или repository.ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUserWithInterests атомарно сохраняет пользователя вместе с интересами
	// и возвращает его ID.
	CreateUserWithInterests(ctx context.Context, user models.User, interests []string) (int64, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// ListInterests возвращает строки интересов пользователя.
	ListInterests(ctx context.Context, userID int64) ([]models.UserInterest, error)

	// UpdateLastLogin обновляет отметку последнего входа.
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// EventPublisher публикует события приложения для подписчиков.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// UserRegisteredEvent — событие об успешной регистрации нового пользователя.
type UserRegisteredEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterInput — провалидированные входные данные регистрации.
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Workplace    string
	AboutSection string
	Interests    string
}

// Service реализует потоки регистрации и входа поверх хранилища пользователей.
type Service struct {
	users      UserRepository
	events     EventPublisher
	routingKey string
	log        *slog.Logger
}

// New создает новый экземпляр Service. Publisher может быть nil,
// тогда события регистрации не публикуются.
func New(users UserRepository, events EventPublisher, routingKey string, log *slog.Logger) *Service {
	return &Service{
		users:      users,
		events:     events,
		routingKey: routingKey,
		log:        log,
	}
}

// Register создает нового пользователя: хэширует пароль, разбирает строку
// интересов и атомарно сохраняет пользователя вместе с интересами.
// Занятый email возвращается как ErrEmailTaken — и при предварительной
// проверке, и при срабатывании ограничения уникальности в базе.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "account.Register"

	_, err := s.users.FindUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Email:        in.Email,
		PasswordHash: hashed,
		Name:         in.Name,
		Workplace:    optional(in.Workplace),
		AboutSection: optional(in.AboutSection),
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	newID, err := s.users.CreateUserWithInterests(ctx, user, SplitInterests(in.Interests))
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	user.ID = newID

	if s.events != nil {
		event := UserRegisteredEvent{
			UserID:    newID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: now,
		}
		if err := s.events.Publish(ctx, s.routingKey, event); err != nil {
			// Регистрация уже зафиксирована, событие теряем
			s.log.Error("failed to publish user.registered event",
				slog.String("op", op), sl.Err(err))
		}
	}

	return &user, nil
}

// Login проверяет учетные данные пользователя и обновляет отметку последнего входа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "account.Login"

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(user.PasswordHash, rawPassword) {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Вход считается успешным, устаревшая отметка не критична
		s.log.Error("failed to update last login", slog.String("op", op), sl.Err(err))
	} else {
		user.LastLoginAt = time.Now().UTC()
	}

	return user, nil
}

// Profile — профиль пользователя вместе с его интересами.
type Profile struct {
	User      *models.User
	Interests []string
}

// GetProfile возвращает профиль пользователя для авторизованной зоны.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.users.ListInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	interests := make([]string, 0, len(rows))
	for _, row := range rows {
		interests = append(interests, row.Interest)
	}
	return &Profile{User: user, Interests: interests}, nil
}

// SplitInterests разбирает строку интересов, разделенных запятыми:
// каждый токен обрезается, пустые отбрасываются.
func SplitInterests(raw string) []string {
	var result []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		result = append(result, token)
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
