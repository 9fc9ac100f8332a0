package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// AuthService issues credentials; every registered account starts as a
// regular user and escalates only through the role request workflow.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
