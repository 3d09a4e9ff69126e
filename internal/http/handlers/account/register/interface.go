package register

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/meetsync/internal/models"
	"github.com/magabrotheeeer/meetsync/internal/services/account"
)

type Service interface {
	Register(ctx context.Context, in account.RegisterInput) (*models.User, error)
}

type SessionManager interface {
	Establish(ctx context.Context, w http.ResponseWriter, data models.SessionData) (string, error)
}
