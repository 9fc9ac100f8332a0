package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// RoleRequestPage is one page of role requests plus per-status stats.
type RoleRequestPage struct {
	Items      []*domain.RoleRequest          `json:"items"`
	Stats      map[domain.RequestStatus]int64 `json:"stats"`
	Total      int64                          `json:"total"`
	Page       int                            `json:"page"`
	Limit      int                            `json:"limit"`
	TotalPages int                            `json:"total_pages"`
}

// RoleRequestService governs the role escalation workflow.
type RoleRequestService interface {
	// Submit files a pending escalation request.
	Submit(ctx context.Context, userID string, requestedRole domain.Role, reason string) (*domain.RoleRequest, error)

	// Review resolves a pending request. Approval cascades the requested role
	// onto the user and pushes a realtime event to their private channel.
	Review(ctx context.Context, requestID string, actor domain.Actor, decision domain.RequestStatus, adminNotes string) (*domain.RoleRequest, error)

	// Revoke unilaterally strips a role without an underlying request,
	// resetting the user to the base role. Pushes a realtime event and emails
	// the user.
	Revoke(ctx context.Context, userID string, roleToRevoke domain.Role, actor domain.Actor) (*domain.User, error)

	// Delete removes a request; blocked while an approved grant is still live.
	Delete(ctx context.Context, requestID string) error

	List(ctx context.Context, filter ListRoleRequestsFilter) (*RoleRequestPage, error)
	Mine(ctx context.Context, userID string) ([]*domain.RoleRequest, error)
}
