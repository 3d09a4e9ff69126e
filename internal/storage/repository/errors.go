package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUserNotFound возвращается, когда пользователь с заданным email или id не существует.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken возвращается при нарушении уникального индекса по email.
// Ограничение в базе закрывает гонку между предварительной проверкой и вставкой.
var ErrEmailTaken = errors.New("email already taken")

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return err
}
