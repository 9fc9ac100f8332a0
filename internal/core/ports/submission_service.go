package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// AuthorInput is the author identity snapshotted onto a new submission.
type AuthorInput struct {
	UserID      string
	Name        string
	Email       string
	Affiliation string
	Phone       string
}

// FileInput is the upload tuple attached at creation; the core never reads
// file bytes.
type FileInput struct {
	URL      string
	Filename string
	FileType string
	FileSize int64
}

// SubmitSubmissionInput carries all data needed to create a submission.
type SubmitSubmissionInput struct {
	Type          domain.SubmissionType
	RequirementID string
	Title         string
	Abstract      string
	Author        AuthorInput
	File          FileInput
}

// ReviewSubmissionInput carries one review action.
type ReviewSubmissionInput struct {
	SubmissionID string
	Actor        domain.Actor
	Decision     domain.SubmissionStatus
	Remarks      string
}

// SubmissionPage is one page of submissions plus totals.
type SubmissionPage struct {
	Items      []*domain.Submission `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

// SubmissionStats are per-status counts for both submission kinds.
type SubmissionStats struct {
	Manuscripts map[domain.SubmissionStatus]int64 `json:"manuscripts"`
	Papers      map[domain.SubmissionStatus]int64 `json:"papers"`
}

// SubmissionService defines use-case operations for the review pipeline.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmitSubmissionInput) (*domain.Submission, error)

	// Review applies one review action. Editors may only review submissions
	// assigned to them; chief editors and admins review anything.
	Review(ctx context.Context, input ReviewSubmissionInput) (*domain.Submission, error)

	// Delete removes the submission and decrements the parent requirement's
	// submission counter.
	Delete(ctx context.Context, submissionID string) error

	Get(ctx context.Context, id string, actor domain.Actor) (*domain.Submission, error)
	List(ctx context.Context, filter ListSubmissionsFilter, actor domain.Actor) (*SubmissionPage, error)
	Stats(ctx context.Context, actor domain.Actor) (*SubmissionStats, error)
}
