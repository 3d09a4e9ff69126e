package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/meetsync/internal/models"
)

// CreateUserWithInterests сохраняет пользователя вместе со строками его интересов
// в одной транзакции и возвращает присвоенный ID. Строка пользователя и строки
// интересов либо фиксируются вместе, либо вместе откатываются: частичная запись
// никогда не видна читателям. Нарушение уникальности email возвращается
// как ErrEmailTaken.
func (s *Storage) CreateUserWithInterests(ctx context.Context, user models.User, interests []string) (int64, error) {
	const op = "storage.CreateUserWithInterests"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	// Откат после Commit безвреден
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	query := `INSERT INTO users (email, password_hash, name, workplace, about_section,
			      created_at, last_login_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := tx.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Workplace, user.AboutSection,
		user.CreatedAt, user.LastLoginAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}

	if err := addInterests(ctx, tx, newID, interests); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// addInterests вставляет по строке на каждый непустой интерес в рамках
// переданной транзакции. Значения обрезаются, пустые молча отбрасываются,
// пустой список — no-op.
func addInterests(ctx context.Context, tx *sql.Tx, userID int64, interests []string) error {
	const op = "storage.addInterests"

	query := `INSERT INTO user_interests (user_id, interest) VALUES ($1, $2);`
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, userID, interest); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// FindUserByEmail возвращает пользователя по email или ErrUserNotFound.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, name, workplace, about_section,
			      created_at, last_login_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, name, workplace, about_section,
			      created_at, last_login_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var workplace, aboutSection sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&workplace, &aboutSection, &u.CreatedAt, &u.LastLoginAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if workplace.Valid {
		u.Workplace = &workplace.String
	}
	if aboutSection.Valid {
		u.AboutSection = &aboutSection.String
	}
	return u, nil
}

// ListInterests возвращает интересы пользователя в порядке добавления.
func (s *Storage) ListInterests(ctx context.Context, userID int64) ([]models.UserInterest, error) {
	const op = "storage.ListInterests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, interest, created_at
			  FROM user_interests
			  WHERE user_id = $1
			  ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.UserInterest
	for rows.Next() {
		var it models.UserInterest
		if err = rows.Scan(&it.ID, &it.UserID, &it.Interest, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLastLogin обновляет отметку последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userID int64) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET last_login_at = now() WHERE id = $1;`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountUsers возвращает общее число пользователей. Используется для диагностики.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
