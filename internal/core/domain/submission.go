package domain

import "time"

// SubmissionType discriminates the two kinds of editorial submission that
// share one collection and one review pipeline.
type SubmissionType string

const (
	TypeManuscript    SubmissionType = "manuscript"
	TypeResearchPaper SubmissionType = "research-paper"
)

// SubmissionStatus is the lifecycle state of a submission.
//
//	pending → under-review → accepted | rejected
//
// under-review is entered only via assignment, never by a review action.
// completed is the research-paper "unassigned" resting state; manuscripts
// use pending. The two vocabularies are historic and deliberately preserved.
type SubmissionStatus string

const (
	SubmissionPending     SubmissionStatus = "pending"
	SubmissionUnderReview SubmissionStatus = "under-review"
	SubmissionAccepted    SubmissionStatus = "accepted"
	SubmissionRejected    SubmissionStatus = "rejected"
	SubmissionCompleted   SubmissionStatus = "completed"
)

// IsTerminal reports whether the status is a final disposition.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionAccepted || s == SubmissionRejected
}

// UnassignedStatus returns the status a submission of this type falls back to
// when its editor assignment is cleared.
func (t SubmissionType) UnassignedStatus() SubmissionStatus {
	if t == TypeResearchPaper {
		return SubmissionCompleted
	}
	return SubmissionPending
}

// AuthorSnapshot is the author's identity captured at submission time.
// Intentionally denormalized: later profile edits never alter historic
// submissions.
type AuthorSnapshot struct {
	UserID      string `json:"user_id" bson:"user_id"`
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	Affiliation string `json:"affiliation,omitempty" bson:"affiliation,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// FileRef points at the uploaded document; the core never reads file bytes.
type FileRef struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
	FileType string `json:"file_type" bson:"file_type"`
	FileSize int64  `json:"file_size" bson:"file_size"`
}

// Assignment is the editor-assignment triple set and cleared together.
type Assignment struct {
	EditorID   string
	AssignedBy string
	AssignedAt time.Time
}

// Submission is the unified manuscript / research-paper record.
type Submission struct {
	ID            string           `json:"id" bson:"_id,omitempty"`
	Type          SubmissionType   `json:"type" bson:"type"`
	RequirementID string           `json:"requirement_id" bson:"requirement_id"`
	Title         string           `json:"title" bson:"title"`
	Abstract      string           `json:"abstract" bson:"abstract"`
	Author        AuthorSnapshot   `json:"author" bson:"author"`
	File          FileRef          `json:"file" bson:"file"`
	Status        SubmissionStatus `json:"status" bson:"status"`

	// Assignment fields: set together by the assignment engine.
	AssignedEditor string    `json:"assigned_editor,omitempty" bson:"assigned_editor,omitempty"`
	AssignedBy     string    `json:"assigned_by,omitempty" bson:"assigned_by,omitempty"`
	AssignedAt     time.Time `json:"assigned_at,omitempty" bson:"assigned_at,omitempty"`

	// Editor and admin review fields are kept apart so an admin override
	// never erases the editor's notes.
	EditorRemarks    string    `json:"editor_remarks,omitempty" bson:"editor_remarks,omitempty"`
	EditorReviewedAt time.Time `json:"editor_reviewed_at,omitempty" bson:"editor_reviewed_at,omitempty"`
	AdminRemarks     string    `json:"admin_remarks,omitempty" bson:"admin_remarks,omitempty"`
	ReviewedBy       string    `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt       time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`

	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
