// Package session реализует серверную сессию, привязанную к клиенту
// через непрозрачный токен в HTTP cookie. Данные идентичности хранятся
// в Redis и истекают после периода бездействия.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/meetsync/internal/config"
	"github.com/magabrotheeeer/meetsync/internal/models"
)

// ErrNoSession возвращается, когда у клиента нет cookie, токен неизвестен
// или сессия истекла: запрос считается анонимным.
var ErrNoSession = errors.New("no active session")

// Manager владеет жизненным циклом сессии: создание, чтение, очистка, истечение.
type Manager struct {
	db         *redis.Client
	cookieName string
	idleTTL    time.Duration
}

// New подключается к Redis и возвращает менеджер сессий.
func New(ctx context.Context, redisCfg config.RedisConnection, sessionCfg config.Session) (*Manager, error) {
	const op = "session.New"
	db := redis.NewClient(&redis.Options{
		Addr:         redisCfg.AddressRedis,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		Username:     redisCfg.User,
		MaxRetries:   redisCfg.MaxRetries,
		DialTimeout:  redisCfg.DialTimeout,
		ReadTimeout:  redisCfg.TimeoutRedis,
		WriteTimeout: redisCfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Manager{
		db:         db,
		cookieName: sessionCfg.CookieName,
		idleTTL:    sessionCfg.IdleTTL,
	}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

// Establish создает новую сессию для пользователя и выставляет cookie с токеном.
// Существующая сессия клиента при этом перезаписывается.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, data models.SessionData) (string, error) {
	const op = "session.Establish"

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.New().String()
	if err := m.db.Set(ctx, sessionKey(token), jsonData, m.idleTTL).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// Cookie недоступна скриптам и обязательна для работы приложения
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// Get возвращает данные сессии текущего клиента и продлевает период бездействия.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*models.SessionData, error) {
	const op = "session.Get"

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
	}

	val, err := m.db.GetEx(ctx, sessionKey(cookie.Value), m.idleTTL).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var data models.SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &data, nil
}

// Clear явно завершает сессию клиента: ключ удаляется, cookie гасится.
// Отсутствие сессии не считается ошибкой, операция идемпотентна.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	const op = "session.Clear"

	cookie, err := r.Cookie(m.cookieName)
	if err == nil {
		if err := m.db.Del(ctx, sessionKey(cookie.Value)).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return nil
}

// Close закрывает соединение с Redis. Менеджер после этого непригоден к использованию.
func (m *Manager) Close() error {
	return m.db.Close()
}
