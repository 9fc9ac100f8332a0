package ports

import (
	"context"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// SubmitArticleInput carries a new article. SubmitForReview=false saves a
// draft; true enters the approval pipeline immediately.
type SubmitArticleInput struct {
	Title           string
	Excerpt         string
	Content         string
	AuthorID        string
	Category        string
	Tags            []string
	SubmitForReview bool
}

// UpdateArticleInput carries an author edit.
type UpdateArticleInput struct {
	ArticleID string
	AuthorID  string
	Patch     ArticlePatch
}

// ArticlePage is one page of articles.
type ArticlePage struct {
	Items      []*domain.Article `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ArticleService governs the newsroom approval workflow.
type ArticleService interface {
	Submit(ctx context.Context, input SubmitArticleInput) (*domain.Article, error)

	// Update applies an author edit. Editing an article whose approval status
	// is needsModification resubmits it: the same write resets the approval
	// fields to pending.
	Update(ctx context.Context, input UpdateArticleInput) (*domain.Article, error)

	// Approve publishes the article: one atomic flip of status,
	// approvalStatus, isPublished and publishedAt.
	Approve(ctx context.Context, articleID string, actor domain.Actor) (*domain.Article, error)

	Reject(ctx context.Context, articleID string, actor domain.Actor, reason string) (*domain.Article, error)
	RequestModification(ctx context.Context, articleID string, actor domain.Actor, notes string) (*domain.Article, error)

	Get(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ListArticlesFilter) (*ArticlePage, error)
}
