package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// AutoAssignResult summarizes one batch distribution: enough for the caller
// to display "distributed N among M editors, K get one extra".
type AutoAssignResult struct {
	Assigned  int // submissions actually assigned
	Editors   int // editor pool size
	PerEditor int // floor(unassigned / editors)
	Remainder int // editors that received one extra
	Skipped   int // submissions lost to a concurrent assignment or write failure
}

// EditorWorkload is the per-editor view used for human dispatch. The
// auto-assign algorithm deliberately does not consult it.
type EditorWorkload struct {
	EditorID    string `json:"editor_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Manuscripts int64  `json:"manuscripts"`
	Papers      int64  `json:"papers"`
	Total       int64  `json:"total"`
}

// KindStats are the desk counts for one submission kind.
type KindStats struct {
	Total      int64 `json:"total"`
	Assigned   int64 `json:"assigned"`
	Unassigned int64 `json:"unassigned"`
	Pending    int64 `json:"pending"`
}

// DeskStats is the chief-editor dashboard summary.
type DeskStats struct {
	Manuscripts KindStats `json:"manuscripts"`
	Papers      KindStats `json:"papers"`
	Editors     int       `json:"editors"`
	AvgWorkload int64     `json:"avg_workload"`
}

// AssignmentService distributes submissions across the editor pool.
type AssignmentService interface {
	// AutoAssign distributes every eligible unassigned submission across the
	// editor pool round-robin, oldest submission first.
	AutoAssign(ctx context.Context, actor domain.Actor) (*AutoAssignResult, error)

	// Assign puts one submission on a specific editor's desk.
	Assign(ctx context.Context, submissionID, editorID string, actor domain.Actor) (*domain.Submission, error)

	// Reassign moves the submission to another editor without resetting its
	// status; it may steal work already under review.
	Reassign(ctx context.Context, submissionID, editorID string, actor domain.Actor) (*domain.Submission, error)

	// Unassign clears the assignment and resets status to the per-type default.
	Unassign(ctx context.Context, submissionID string) (*domain.Submission, error)

	ListEditors(ctx context.Context) ([]EditorWorkload, error)
	Stats(ctx context.Context) (*DeskStats, error)
}
