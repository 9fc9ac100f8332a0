package ports

import (
	"context"
	"time"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// ListArticlesFilter carries query parameters for listing articles.
type ListArticlesFilter struct {
	Status         domain.ArticleStatus  // optional
	ApprovalStatus domain.ApprovalStatus // optional
	AuthorID       string                // optional
	Category       string                // optional
	Page           int                   // 1-based
	Limit          int
}

// ArticlePatch carries an author edit; nil pointers leave a field untouched.
type ArticlePatch struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Category *string
	Tags     *[]string
}

// ArticleRepository defines persistence operations for newsroom articles.
// The review mutations are modelled as single atomic writes returning the
// fully-updated document, so no caller can observe a half-flipped article.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, int64, error)

	// Publish flips status=published, approvalStatus=approved,
	// isPublished=true and publishedAt in one write, stamping the reviewer.
	Publish(ctx context.Context, id, reviewedBy string, now time.Time) (*domain.Article, error)

	// Reject sends the article back to draft with approvalStatus=rejected.
	Reject(ctx context.Context, id, reviewedBy, reason string, now time.Time) (*domain.Article, error)

	// RequestModification re-opens the article for author edits.
	RequestModification(ctx context.Context, id, reviewedBy, notes string, now time.Time) (*domain.Article, error)

	// UpdateContent applies an author edit. When resetApproval is true the
	// same write resets approvalStatus=pending, status=pending,
	// isPublished=false and clears modificationNotes (resubmission-on-edit).
	UpdateContent(ctx context.Context, id string, patch ArticlePatch, resetApproval bool, now time.Time) (*domain.Article, error)
}
