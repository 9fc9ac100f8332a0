package ports

import (
	"context"
	"time"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// ListSubmissionsFilter carries all query parameters for listing submissions.
type ListSubmissionsFilter struct {
	Type     domain.SubmissionType   // optional: manuscript or research-paper
	Status   domain.SubmissionStatus // optional
	EditorID string                  // optional: scoped to one assigned editor
	Assigned *bool                   // optional: assigned vs unassigned
	Page     int                     // 1-based
	Limit    int
}

// ReviewPatch is the set of fields a review action writes. Editor and admin
// remarks land in separate fields; nil pointers leave a field untouched.
type ReviewPatch struct {
	Status           domain.SubmissionStatus
	ReviewedBy       string
	ReviewedAt       time.Time
	EditorRemarks    *string
	EditorReviewedAt *time.Time
	AdminRemarks     *string
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	List(ctx context.Context, filter ListSubmissionsFilter) ([]*domain.Submission, int64, error)

	// FindUnassigned returns the submissions eligible for auto-assignment,
	// ordered by creation time ascending (oldest first): manuscripts in
	// pending/under-review and research papers in completed, all with no
	// assigned editor.
	FindUnassigned(ctx context.Context) ([]*domain.Submission, error)

	// AssignIfUnassigned sets the assignment triple and flips status to
	// under-review only while assigned_editor is still empty. Returns
	// domain.ErrConflict when another assignment won the race.
	AssignIfUnassigned(ctx context.Context, id string, a domain.Assignment) error

	// SetAssignment overwrites the assignment triple regardless of the current
	// assignee. When status is non-nil it is set in the same write (manual
	// assignment); a nil status leaves it untouched (reassignment steals the
	// work without resetting review progress).
	SetAssignment(ctx context.Context, id string, a domain.Assignment, status *domain.SubmissionStatus) error

	// ClearAssignment removes the assignment triple and resets status to the
	// per-type unassigned default.
	ClearAssignment(ctx context.Context, id string, reset domain.SubmissionStatus) error

	// ApplyReview writes the review fields only while status still equals
	// expect. Returns domain.ErrConflict when the submission moved underneath
	// the reviewer.
	ApplyReview(ctx context.Context, id string, expect domain.SubmissionStatus, patch ReviewPatch) error

	Delete(ctx context.Context, id string) error

	// CountAssigned returns the number of submissions of type t assigned to
	// editorID whose status is one of statuses (editor workload).
	CountAssigned(ctx context.Context, editorID string, statuses []domain.SubmissionStatus, t domain.SubmissionType) (int64, error)

	// CountByStatus groups submissions of type t by status.
	CountByStatus(ctx context.Context, t domain.SubmissionType) (map[domain.SubmissionStatus]int64, error)

	// CountAssignedTotal returns how many submissions of type t have an editor.
	CountAssignedTotal(ctx context.Context, t domain.SubmissionType) (int64, error)
}

// RequirementRepository is the narrow window into the call-for-submissions
// documents the core must touch: the counter cascade on submission delete.
type RequirementRepository interface {
	DecrementSubmissions(ctx context.Context, requirementID string) error
}
