package domain

import "time"

// ArticleStatus is the coarse lifecycle state of a newsroom article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePending   ArticleStatus = "pending"
	ArticleApproved  ArticleStatus = "approved"
	ArticleRejected  ArticleStatus = "rejected"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// ApprovalStatus is the finer-grained review axis layered on top of Status.
// approvalStatus=approved forces status=published and isPublished=true in the
// same write; the writer keeps the two axes consistent, never the reader.
type ApprovalStatus string

const (
	ApprovalPending           ApprovalStatus = "pending"
	ApprovalApproved          ApprovalStatus = "approved"
	ApprovalRejected          ApprovalStatus = "rejected"
	ApprovalNeedsModification ApprovalStatus = "needsModification"
)

// Article is a newsroom piece moving through the approval pipeline.
type Article struct {
	ID       string   `json:"id" bson:"_id,omitempty"`
	Title    string   `json:"title" bson:"title"`
	Excerpt  string   `json:"excerpt" bson:"excerpt"`
	Content  string   `json:"content" bson:"content"`
	AuthorID string   `json:"author_id" bson:"author_id"`
	Category string   `json:"category" bson:"category"`
	Tags     []string `json:"tags,omitempty" bson:"tags,omitempty"`

	Status         ArticleStatus  `json:"status" bson:"status"`
	ApprovalStatus ApprovalStatus `json:"approval_status" bson:"approval_status"`
	IsPublished    bool           `json:"is_published" bson:"is_published"`
	PublishedAt    time.Time      `json:"published_at,omitempty" bson:"published_at,omitempty"`

	ReviewedBy        string    `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt        time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	RejectionReason   string    `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	ModificationNotes string    `json:"modification_notes,omitempty" bson:"modification_notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
