package ports

import (
	"context"
	"time"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// ListRoleRequestsFilter carries query parameters for listing role requests.
type ListRoleRequestsFilter struct {
	Status domain.RequestStatus // optional
	UserID string               // optional: one user's history
	Page   int                  // 1-based
	Limit  int
}

// Resolution is the one-shot disposition written by a review action.
type Resolution struct {
	Status     domain.RequestStatus
	ReviewedBy string
	ReviewedAt time.Time
	AdminNotes string
}

// RoleRequestRepository defines persistence operations for role requests.
type RoleRequestRepository interface {
	Create(ctx context.Context, r *domain.RoleRequest) (*domain.RoleRequest, error)
	FindByID(ctx context.Context, id string) (*domain.RoleRequest, error)
	List(ctx context.Context, filter ListRoleRequestsFilter) ([]*domain.RoleRequest, int64, error)

	// HasPending reports whether a pending request already exists for the
	// (user, role) pair. Enforced at submit time, not by a unique index.
	HasPending(ctx context.Context, userID string, role domain.Role) (bool, error)

	// Resolve writes the disposition only while status is still pending.
	// Returns domain.ErrAlreadyReviewed otherwise, leaving the first
	// resolution untouched.
	Resolve(ctx context.Context, id string, res Resolution) error

	Delete(ctx context.Context, id string) error

	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}
