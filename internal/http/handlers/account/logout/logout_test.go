package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок менеджера сессий
type SessionMock struct {
	mock.Mock
}

func (m *SessionMock) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	args := m.Called(ctx, w, r)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		clearErr error
	}{
		{
			name:   "post logout clears session and redirects",
			method: http.MethodPost,
		},
		{
			name:   "get logout also redirects",
			method: http.MethodGet,
		},
		{
			name:     "clear failure still redirects",
			method:   http.MethodPost,
			clearErr: errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionMock := new(SessionMock)
			sessionMock.On("Clear", mock.Anything, mock.Anything, mock.Anything).
				Return(tt.clearErr).Once()

			handler := New(newNoopLogger(), sessionMock)

			req := httptest.NewRequest(tt.method, "/account/logout", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))

			sessionMock.AssertExpectations(t)
		})
	}
}
