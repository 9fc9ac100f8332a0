package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// RoleRequestService implements the role escalation workflow.
type RoleRequestService struct {
	requests ports.RoleRequestRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewRoleRequestService(
	requests ports.RoleRequestRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *RoleRequestService {
	return &RoleRequestService{requests: requests, users: users, notifier: notifier, log: log}
}

// Submit files a pending escalation request. At most one pending request may
// exist per (user, role) pair; the check is an existence read, not a unique
// index, so two simultaneous submits can still both land (accepted risk).
func (s *RoleRequestService) Submit(ctx context.Context, userID string, requestedRole domain.Role, reason string) (*domain.RoleRequest, error) {
	if !requestedRole.IsRequestable() {
		return nil, fmt.Errorf("role %q cannot be requested: %w", requestedRole, domain.ErrValidation)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("a reason is required: %w", domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == requestedRole {
		return nil, domain.ErrAlreadyHasRole
	}

	pending, err := s.requests.HasPending(ctx, userID, requestedRole)
	if err != nil {
		return nil, fmt.Errorf("submit role request: %w", err)
	}
	if pending {
		return nil, domain.ErrDuplicatePending
	}

	created, err := s.requests.Create(ctx, &domain.RoleRequest{
		UserID:        userID,
		RequestedRole: requestedRole,
		Reason:        reason,
		Status:        domain.RequestPending,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit role request: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues("submitted").Inc()
	s.log.Info().
		Str("request_id", created.ID).
		Str("user_id", userID).
		Str("requested_role", string(requestedRole)).
		Msg("role request submitted")

	return created, nil
}

// Review resolves a pending request. The disposition write is conditional on
// the request still being pending, so a second review fails with
// ErrAlreadyReviewed and never touches the first resolution. Approval
// cascades the requested role onto the user; the cascade is a second,
// non-transactional write, surfaced loudly when it fails.
//
// Approval pushes only a realtime event, no email; revocation is the path
// that emails. The asymmetry is deliberate.
func (s *RoleRequestService) Review(ctx context.Context, requestID string, actor domain.Actor, decision domain.RequestStatus, adminNotes string) (*domain.RoleRequest, error) {
	if decision != domain.RequestApproved && decision != domain.RequestRejected {
		return nil, fmt.Errorf("decision must be approved or rejected: %w", domain.ErrValidation)
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestPending {
		return nil, domain.ErrAlreadyReviewed
	}

	if err := s.requests.Resolve(ctx, requestID, ports.Resolution{
		Status:     decision,
		ReviewedBy: actor.ID,
		ReviewedAt: time.Now().UTC(),
		AdminNotes: adminNotes,
	}); err != nil {
		return nil, fmt.Errorf("review role request: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues(string(decision)).Inc()
	s.log.Info().
		Str("request_id", requestID).
		Str("decision", string(decision)).
		Str("reviewed_by", actor.ID).
		Msg("role request reviewed")

	if decision == domain.RequestApproved {
		if err := s.users.SetRole(ctx, req.UserID, req.RequestedRole); err != nil {
			s.log.Error().Err(err).
				Str("request_id", requestID).
				Str("user_id", req.UserID).
				Str("role", string(req.RequestedRole)).
				Msg("request approved but user role not updated")
			return nil, fmt.Errorf("user role update: %v: %w", err, domain.ErrCascadeIncomplete)
		}

		s.notifier.Notify(ports.Notification{
			RecipientKey: req.UserID,
			Event: &ports.RealtimeEvent{
				Channel: "user:" + req.UserID,
				Name:    "role:approved",
				Payload: map[string]any{
					"new_role": string(req.RequestedRole),
					"message":  fmt.Sprintf("Your %s role has been approved!", req.RequestedRole),
				},
			},
		})
	}

	return s.requests.FindByID(ctx, requestID)
}

// Revoke unilaterally strips a role and resets the user to the base role.
// The only role change without an underlying approved request.
func (s *RoleRequestService) Revoke(ctx context.Context, userID string, roleToRevoke domain.Role, actor domain.Actor) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != roleToRevoke {
		return nil, fmt.Errorf("current role is %q: %w", user.Role, domain.ErrRoleMismatch)
	}

	if err := s.users.SetRoleIfCurrent(ctx, userID, roleToRevoke, domain.RoleUser); err != nil {
		return nil, fmt.Errorf("revoke role: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues("revoked").Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("revoked_role", string(roleToRevoke)).
		Str("revoked_by", actor.ID).
		Msg("role revoked")

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Role Access Revoked</h2>
  <p>Hello %s,</p>
  <p>Your <strong>%s</strong> role has been revoked by the administrator. Your account is now a regular user account.</p>
  <p>If you believe this was done in error, please contact the administrator.</p>
  <p>This is an automated message from Planning Insights.</p>
</div>`, user.Name, roleToRevoke)

	s.notifier.Notify(ports.Notification{
		RecipientKey: userID,
		Email: &ports.EmailMessage{
			To:      user.Email,
			Subject: fmt.Sprintf("Role Revoked - %s Access Removed", roleToRevoke),
			HTML:    html,
		},
		Event: &ports.RealtimeEvent{
			Channel: "user:" + userID,
			Name:    "role:revoked",
			Payload: map[string]any{
				"old_role": string(roleToRevoke),
				"new_role": string(domain.RoleUser),
				"message":  fmt.Sprintf("Your %s role has been revoked.", roleToRevoke),
			},
		},
	})

	return s.users.FindByID(ctx, userID)
}

// Delete removes a request. An approved request whose grant is still live on
// the user cannot be deleted: revoke first, so the audit trail of an active
// grant is never lost.
func (s *RoleRequestService) Delete(ctx context.Context, requestID string) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if req.Status == domain.RequestApproved {
		user, err := s.users.FindByID(ctx, req.UserID)
		if err == nil && user.Role == req.RequestedRole {
			return domain.ErrCannotDelete
		}
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("delete role request: %w", err)
	}

	s.log.Info().Str("request_id", requestID).Msg("role request deleted")
	return nil
}

// List returns a page of requests plus per-status stats.
func (s *RoleRequestService) List(ctx context.Context, filter ports.ListRoleRequestsFilter) (*ports.RoleRequestPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > maxPageLimit {
		filter.Limit = 20
	}

	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}
	stats, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}

	return &ports.RoleRequestPage{
		Items:      items,
		Stats:      stats,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

// Mine returns one user's full request history.
func (s *RoleRequestService) Mine(ctx context.Context, userID string) ([]*domain.RoleRequest, error) {
	items, _, err := s.requests.List(ctx, ports.ListRoleRequestsFilter{UserID: userID, Page: 1, Limit: maxPageLimit})
	if err != nil {
		return nil, fmt.Errorf("my role requests: %w", err)
	}
	return items, nil
}
