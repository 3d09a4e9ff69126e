// Package models содержит доменные модели сервиса аккаунтов:
// пользователя, его интересы и данные серверной сессии.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя MeetSync.
type User struct {
	ID           int64     // Суррогатный идентификатор, присваивается хранилищем
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля, исходный пароль никогда не хранится
	Name         string    // Отображаемое имя
	Workplace    *string   // Место работы (опционально)
	AboutSection *string   // Свободный текст "о себе" (опционально)
	CreatedAt    time.Time // Момент регистрации
	LastLoginAt  time.Time // Момент последнего успешного входа
}

// UserInterest представляет один тег-интерес, принадлежащий ровно одному пользователю.
// Дубликаты среди интересов одного пользователя допустимы.
type UserInterest struct {
	ID        int64
	UserID    int64
	Interest  string
	CreatedAt time.Time
}

// SessionData — минимальный набор данных идентичности,
// хранимый в серверной сессии по непрозрачному токену.
type SessionData struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
