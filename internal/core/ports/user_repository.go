package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindEditors returns every user with role=editor, ordered ascending by id.
	// The stable order makes round-robin assignment deterministic.
	FindEditors(ctx context.Context) ([]*domain.User, error)

	// SetRole unconditionally replaces the user's role (role-approval cascade).
	SetRole(ctx context.Context, userID string, role domain.Role) error

	// SetRoleIfCurrent replaces the role only while the stored role still
	// equals current. Returns domain.ErrRoleMismatch when it does not, so a
	// raced revoke fails loudly instead of overwriting.
	SetRoleIfCurrent(ctx context.Context, userID string, current, next domain.Role) error
}
