package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

const maxPageLimit = 100

// SubmissionService implements the submission review pipeline.
type SubmissionService struct {
	subs         ports.SubmissionRepository
	requirements ports.RequirementRepository
	notifier     ports.Notifier
	log          zerolog.Logger
}

func NewSubmissionService(
	subs ports.SubmissionRepository,
	requirements ports.RequirementRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{subs: subs, requirements: requirements, notifier: notifier, log: log}
}

// Submit creates a submission in its per-type resting state with no assigned
// editor. The author identity is snapshotted so later profile edits never
// rewrite it.
func (s *SubmissionService) Submit(ctx context.Context, input ports.SubmitSubmissionInput) (*domain.Submission, error) {
	if input.Title == "" || input.Abstract == "" || input.RequirementID == "" {
		return nil, fmt.Errorf("title, abstract and requirement are required: %w", domain.ErrValidation)
	}
	if input.Type != domain.TypeManuscript && input.Type != domain.TypeResearchPaper {
		return nil, fmt.Errorf("unknown submission type %q: %w", input.Type, domain.ErrValidation)
	}

	now := time.Now().UTC()
	sub := &domain.Submission{
		Type:          input.Type,
		RequirementID: input.RequirementID,
		Title:         input.Title,
		Abstract:      input.Abstract,
		Status:        input.Type.UnassignedStatus(),
		Author: domain.AuthorSnapshot{
			UserID:      input.Author.UserID,
			Name:        input.Author.Name,
			Email:       input.Author.Email,
			Affiliation: input.Author.Affiliation,
			Phone:       input.Author.Phone,
		},
		File: domain.FileRef{
			URL:      input.File.URL,
			Filename: input.File.Filename,
			FileType: input.File.FileType,
			FileSize: input.File.FileSize,
		},
		SubmittedAt: now,
		CreatedAt:   now,
	}

	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		s.log.Error().Err(err).Str("requirement_id", input.RequirementID).Msg("failed to create submission")
		return nil, err
	}

	s.log.Info().
		Str("submission_id", created.ID).
		Str("type", string(created.Type)).
		Str("author_id", created.Author.UserID).
		Msg("submission received")

	return created, nil
}

// Review applies one review action.
//
// Editors hold authority only over their own assignments and may only issue
// terminal decisions; chief editors and admins review any submission and may
// also push a submission back to under-review or pending. The write is
// conditional on the status observed here, so a raced review fails with a
// conflict instead of silently overwriting.
func (s *SubmissionService) Review(ctx context.Context, input ports.ReviewSubmissionInput) (*domain.Submission, error) {
	sub, err := s.subs.FindByID(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	editorPath := input.Actor.Role == domain.RoleEditor
	if editorPath {
		if sub.AssignedEditor == "" || sub.AssignedEditor != input.Actor.ID {
			return nil, fmt.Errorf("submission not assigned to reviewer: %w", domain.ErrForbidden)
		}
		if !input.Decision.IsTerminal() {
			return nil, fmt.Errorf("decision must be accepted or rejected: %w", domain.ErrValidation)
		}
	} else if !input.Actor.Role.CanReviewAnySubmission() {
		return nil, domain.ErrForbidden
	} else if !validAdminDecision(input.Decision) {
		return nil, fmt.Errorf("unknown decision %q: %w", input.Decision, domain.ErrValidation)
	}

	now := time.Now().UTC()
	patch := ports.ReviewPatch{
		Status:     input.Decision,
		ReviewedBy: input.Actor.ID,
		ReviewedAt: now,
	}
	if editorPath {
		patch.EditorRemarks = &input.Remarks
		patch.EditorReviewedAt = &now
	} else if input.Remarks != "" {
		patch.AdminRemarks = &input.Remarks
	}

	if err := s.subs.ApplyReview(ctx, input.SubmissionID, sub.Status, patch); err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}

	metrics.ReviewsTotal.WithLabelValues(string(sub.Type), string(input.Decision)).Inc()
	s.log.Info().
		Str("submission_id", input.SubmissionID).
		Str("decision", string(input.Decision)).
		Str("reviewed_by", input.Actor.ID).
		Msg("submission reviewed")

	if input.Decision.IsTerminal() {
		s.notifyDecision(sub, input.Decision)
	}

	return s.subs.FindByID(ctx, input.SubmissionID)
}

// Delete removes the submission and decrements the parent requirement's
// submission counter. The two writes are not transactional; a failed
// decrement is logged loudly and surfaced as a distinct partial failure.
func (s *SubmissionService) Delete(ctx context.Context, submissionID string) error {
	sub, err := s.subs.FindByID(ctx, submissionID)
	if err != nil {
		return err
	}

	if err := s.subs.Delete(ctx, submissionID); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}

	if sub.RequirementID != "" {
		if err := s.requirements.DecrementSubmissions(ctx, sub.RequirementID); err != nil {
			s.log.Error().Err(err).
				Str("submission_id", submissionID).
				Str("requirement_id", sub.RequirementID).
				Msg("submission deleted but requirement counter not decremented")
			return fmt.Errorf("requirement counter: %v: %w", err, domain.ErrCascadeIncomplete)
		}
	}

	s.log.Info().Str("submission_id", submissionID).Msg("submission deleted")
	return nil
}

// Get fetches one submission. Editors only see their own assignments.
func (s *SubmissionService) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Submission, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleEditor && sub.AssignedEditor != actor.ID {
		return nil, fmt.Errorf("submission not assigned to you: %w", domain.ErrForbidden)
	}
	return sub, nil
}

// List returns a page of submissions. Editor actors are always scoped to
// their own desk regardless of the requested filter.
func (s *SubmissionService) List(ctx context.Context, filter ports.ListSubmissionsFilter, actor domain.Actor) (*ports.SubmissionPage, error) {
	if actor.Role == domain.RoleEditor {
		filter.EditorID = actor.ID
		filter.Assigned = nil
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > maxPageLimit {
		filter.Limit = 20
	}

	items, total, err := s.subs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	return &ports.SubmissionPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

// Stats returns per-status counts for both submission kinds.
func (s *SubmissionService) Stats(ctx context.Context, actor domain.Actor) (*ports.SubmissionStats, error) {
	manuscripts, err := s.subs.CountByStatus(ctx, domain.TypeManuscript)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	papers, err := s.subs.CountByStatus(ctx, domain.TypeResearchPaper)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &ports.SubmissionStats{Manuscripts: manuscripts, Papers: papers}, nil
}

// validAdminDecision: the admin/chief path may also reset a submission to
// pending or under-review, not only close it.
func validAdminDecision(d domain.SubmissionStatus) bool {
	switch d {
	case domain.SubmissionAccepted, domain.SubmissionRejected,
		domain.SubmissionPending, domain.SubmissionUnderReview:
		return true
	}
	return false
}

// notifyDecision emails the author snapshot and pushes a realtime event.
// Best effort: the review stands even if delivery fails.
func (s *SubmissionService) notifyDecision(sub *domain.Submission, decision domain.SubmissionStatus) {
	kind := "Manuscript"
	if sub.Type == domain.TypeResearchPaper {
		kind = "Research Paper"
	}

	var subject, message string
	switch decision {
	case domain.SubmissionAccepted:
		subject = fmt.Sprintf("%s Accepted - Planning Insights", kind)
		message = fmt.Sprintf("Congratulations! Your %s has been accepted for publication.", kind)
	case domain.SubmissionRejected:
		subject = fmt.Sprintf("%s Status Update - Planning Insights", kind)
		message = fmt.Sprintf("Thank you for your submission. After careful review, we are unable to accept your %s at this time.", kind)
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>%s Review Update</h2>
  <p>Dear %s,</p>
  <p>%s</p>
  <p><strong>Title:</strong> %s<br><strong>Status:</strong> %s</p>
  <p>This is an automated message from Planning Insights.</p>
</div>`, kind, sub.Author.Name, message, sub.Title, decision)

	s.notifier.Notify(ports.Notification{
		RecipientKey: sub.Author.UserID,
		Email:        &ports.EmailMessage{To: sub.Author.Email, Subject: subject, HTML: html},
		Event: &ports.RealtimeEvent{
			Channel: "user:" + sub.Author.UserID,
			Name:    "submission:reviewed",
			Payload: map[string]any{
				"submission_id": sub.ID,
				"type":          string(sub.Type),
				"status":        string(decision),
			},
		},
	})
}
