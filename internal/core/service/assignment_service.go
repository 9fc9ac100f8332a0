package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// workloadStatuses are the states that count toward an editor's open desk.
var workloadStatuses = []domain.SubmissionStatus{
	domain.SubmissionPending,
	domain.SubmissionUnderReview,
}

// AssignmentService distributes submissions across the editor pool.
type AssignmentService struct {
	users ports.UserRepository
	subs  ports.SubmissionRepository
	log   zerolog.Logger
}

func NewAssignmentService(users ports.UserRepository, subs ports.SubmissionRepository, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{users: users, subs: subs, log: log}
}

// AutoAssign distributes every eligible unassigned submission across the
// editor pool in round-robin order: editors ascending by id, submissions
// oldest first, i-th submission to editor i mod pool size. Current workload
// is not consulted; the separate ListEditors endpoint exists for human
// dispatch.
func (s *AssignmentService) AutoAssign(ctx context.Context, actor domain.Actor) (*ports.AutoAssignResult, error) {
	editors, err := s.users.FindEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto-assign: %w", err)
	}
	if len(editors) == 0 {
		return nil, domain.ErrNoEditorsAvailable
	}

	unassigned, err := s.subs.FindUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto-assign: %w", err)
	}

	result := &ports.AutoAssignResult{
		Editors:   len(editors),
		PerEditor: len(unassigned) / len(editors),
		Remainder: len(unassigned) % len(editors),
	}
	if len(unassigned) == 0 {
		return result, nil
	}

	now := time.Now().UTC()
	for i, sub := range unassigned {
		editor := editors[i%len(editors)]
		asn := domain.Assignment{
			EditorID:   editor.ID,
			AssignedBy: actor.ID,
			AssignedAt: now,
		}

		// Each assignment is an independent write; one lost race or failed
		// update does not roll back the batch.
		if err := s.subs.AssignIfUnassigned(ctx, sub.ID, asn); err != nil {
			result.Skipped++
			if errors.Is(err, domain.ErrConflict) {
				s.log.Debug().Str("submission_id", sub.ID).Msg("submission assigned concurrently, skipped")
			} else {
				s.log.Error().Err(err).Str("submission_id", sub.ID).Msg("auto-assign write failed")
			}
			continue
		}

		result.Assigned++
		metrics.SubmissionsAssignedTotal.WithLabelValues("auto").Inc()
	}

	s.log.Info().
		Int("assigned", result.Assigned).
		Int("editors", result.Editors).
		Int("skipped", result.Skipped).
		Str("assigned_by", actor.ID).
		Msg("auto-assign completed")

	return result, nil
}

// Assign puts one submission on a specific editor's desk and flips it to
// under-review.
func (s *AssignmentService) Assign(ctx context.Context, submissionID, editorID string, actor domain.Actor) (*domain.Submission, error) {
	if err := s.verifyEditor(ctx, editorID); err != nil {
		return nil, err
	}

	status := domain.SubmissionUnderReview
	asn := domain.Assignment{EditorID: editorID, AssignedBy: actor.ID, AssignedAt: time.Now().UTC()}
	if err := s.subs.SetAssignment(ctx, submissionID, asn, &status); err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}

	metrics.SubmissionsAssignedTotal.WithLabelValues("manual").Inc()
	s.log.Info().Str("submission_id", submissionID).Str("editor_id", editorID).Msg("submission assigned")

	return s.subs.FindByID(ctx, submissionID)
}

// Reassign moves the submission onto another editor's desk without touching
// its status; work already under review is stolen, not reset.
func (s *AssignmentService) Reassign(ctx context.Context, submissionID, editorID string, actor domain.Actor) (*domain.Submission, error) {
	if err := s.verifyEditor(ctx, editorID); err != nil {
		return nil, err
	}

	asn := domain.Assignment{EditorID: editorID, AssignedBy: actor.ID, AssignedAt: time.Now().UTC()}
	if err := s.subs.SetAssignment(ctx, submissionID, asn, nil); err != nil {
		return nil, fmt.Errorf("reassign: %w", err)
	}

	metrics.SubmissionsAssignedTotal.WithLabelValues("reassign").Inc()
	s.log.Info().Str("submission_id", submissionID).Str("editor_id", editorID).Msg("submission reassigned")

	return s.subs.FindByID(ctx, submissionID)
}

// Unassign clears the assignment triple and resets status to the per-type
// default: pending for manuscripts, completed for research papers.
func (s *AssignmentService) Unassign(ctx context.Context, submissionID string) (*domain.Submission, error) {
	sub, err := s.subs.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := s.subs.ClearAssignment(ctx, submissionID, sub.Type.UnassignedStatus()); err != nil {
		return nil, fmt.Errorf("unassign: %w", err)
	}

	s.log.Info().Str("submission_id", submissionID).Str("type", string(sub.Type)).Msg("submission unassigned")

	return s.subs.FindByID(ctx, submissionID)
}

// ListEditors returns the editor pool with open-desk counts per kind.
func (s *AssignmentService) ListEditors(ctx context.Context) ([]ports.EditorWorkload, error) {
	editors, err := s.users.FindEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}

	out := make([]ports.EditorWorkload, 0, len(editors))
	for _, e := range editors {
		manuscripts, err := s.subs.CountAssigned(ctx, e.ID, workloadStatuses, domain.TypeManuscript)
		if err != nil {
			return nil, fmt.Errorf("list editors: %w", err)
		}
		papers, err := s.subs.CountAssigned(ctx, e.ID, workloadStatuses, domain.TypeResearchPaper)
		if err != nil {
			return nil, fmt.Errorf("list editors: %w", err)
		}
		out = append(out, ports.EditorWorkload{
			EditorID:    e.ID,
			Name:        e.Name,
			Email:       e.Email,
			Manuscripts: manuscripts,
			Papers:      papers,
			Total:       manuscripts + papers,
		})
	}
	return out, nil
}

// Stats returns the chief-editor dashboard counts.
func (s *AssignmentService) Stats(ctx context.Context) (*ports.DeskStats, error) {
	editors, err := s.users.FindEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	manuscripts, err := s.kindStats(ctx, domain.TypeManuscript)
	if err != nil {
		return nil, err
	}
	papers, err := s.kindStats(ctx, domain.TypeResearchPaper)
	if err != nil {
		return nil, err
	}

	stats := &ports.DeskStats{
		Manuscripts: manuscripts,
		Papers:      papers,
		Editors:     len(editors),
	}
	if len(editors) > 0 {
		stats.AvgWorkload = (manuscripts.Assigned + papers.Assigned) / int64(len(editors))
	}
	return stats, nil
}

func (s *AssignmentService) kindStats(ctx context.Context, t domain.SubmissionType) (ports.KindStats, error) {
	byStatus, err := s.subs.CountByStatus(ctx, t)
	if err != nil {
		return ports.KindStats{}, fmt.Errorf("stats: %w", err)
	}
	assigned, err := s.subs.CountAssignedTotal(ctx, t)
	if err != nil {
		return ports.KindStats{}, fmt.Errorf("stats: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	return ports.KindStats{
		Total:      total,
		Assigned:   assigned,
		Unassigned: total - assigned,
		Pending:    byStatus[domain.SubmissionPending],
	}, nil
}

// verifyEditor confirms the target user exists and holds the editor role.
func (s *AssignmentService) verifyEditor(ctx context.Context, editorID string) error {
	editor, err := s.users.FindByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEditorNotFound
		}
		return fmt.Errorf("verify editor: %w", err)
	}
	if editor.Role != domain.RoleEditor {
		return domain.ErrEditorNotFound
	}
	return nil
}
