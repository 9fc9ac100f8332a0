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

const defaultRejectionReason = "Article did not meet publication standards"

// ArticleService implements the newsroom approval workflow.
type ArticleService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, users: users, notifier: notifier, log: log}
}

// Submit creates an article as a draft, or directly in the approval pipeline
// when SubmitForReview is set.
func (s *ArticleService) Submit(ctx context.Context, input ports.SubmitArticleInput) (*domain.Article, error) {
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("title and content are required: %w", domain.ErrValidation)
	}

	status := domain.ArticleDraft
	if input.SubmitForReview {
		status = domain.ArticlePending
	}

	now := time.Now().UTC()
	created, err := s.articles.Create(ctx, &domain.Article{
		Title:          input.Title,
		Excerpt:        input.Excerpt,
		Content:        input.Content,
		AuthorID:       input.AuthorID,
		Category:       input.Category,
		Tags:           input.Tags,
		Status:         status,
		ApprovalStatus: domain.ApprovalPending,
		IsPublished:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("submit article: %w", err)
	}

	s.log.Info().
		Str("article_id", created.ID).
		Str("author_id", input.AuthorID).
		Str("status", string(status)).
		Msg("article submitted")

	return created, nil
}

// Update applies an author edit. When the article was sent back with
// needsModification, the same write resubmits it: approval fields reset to
// pending, isPublished cleared.
func (s *ArticleService) Update(ctx context.Context, input ports.UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != input.AuthorID {
		return nil, fmt.Errorf("only the author may edit: %w", domain.ErrForbidden)
	}

	resubmit := article.ApprovalStatus == domain.ApprovalNeedsModification
	updated, err := s.articles.UpdateContent(ctx, input.ArticleID, input.Patch, resubmit, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if resubmit {
		s.log.Info().Str("article_id", input.ArticleID).Msg("article resubmitted after modification")
	}
	return updated, nil
}

// Approve publishes the article: status, approvalStatus, isPublished and
// publishedAt flip in one write, so no reader observes a partial state.
func (s *ArticleService) Approve(ctx context.Context, articleID string, actor domain.Actor) (*domain.Article, error) {
	article, err := s.articles.Publish(ctx, articleID, actor.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.ReviewsTotal.WithLabelValues("article", "approved").Inc()
	s.log.Info().Str("article_id", articleID).Str("reviewed_by", actor.ID).Msg("article published")

	s.notifyAuthor(article, "article:approved",
		"Article Published - Planning Insights",
		fmt.Sprintf("Congratulations! Your article %q has been approved and published.", article.Title))

	return article, nil
}

// Reject sends the article back to draft with a rejection reason.
func (s *ArticleService) Reject(ctx context.Context, articleID string, actor domain.Actor, reason string) (*domain.Article, error) {
	if reason == "" {
		reason = defaultRejectionReason
	}

	article, err := s.articles.Reject(ctx, articleID, actor.ID, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.ReviewsTotal.WithLabelValues("article", "rejected").Inc()
	s.log.Info().Str("article_id", articleID).Str("reviewed_by", actor.ID).Msg("article rejected")

	s.notifyAuthor(article, "article:rejected",
		"Article Not Approved - Planning Insights",
		fmt.Sprintf("Your article %q was not approved. Reason: %s", article.Title, reason))

	return article, nil
}

// RequestModification re-opens the article for author edits; the author's
// next update resubmits it automatically.
func (s *ArticleService) RequestModification(ctx context.Context, articleID string, actor domain.Actor, notes string) (*domain.Article, error) {
	article, err := s.articles.RequestModification(ctx, articleID, actor.ID, notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.ReviewsTotal.WithLabelValues("article", "needs_modification").Inc()
	s.log.Info().Str("article_id", articleID).Msg("article modification requested")

	s.notifyAuthor(article, "article:needs-modification",
		"Article Changes Requested - Planning Insights",
		fmt.Sprintf("Your article %q needs changes before it can be published. Notes: %s", article.Title, notes))

	return article, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.articles.FindByID(ctx, id)
}

func (s *ArticleService) List(ctx context.Context, filter ports.ListArticlesFilter) (*ports.ArticlePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > maxPageLimit {
		filter.Limit = 20
	}

	items, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return &ports.ArticlePage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (s *ArticleService) notifyAuthor(article *domain.Article, event, subject, message string) {
	n := ports.Notification{
		RecipientKey: article.AuthorID,
		Event: &ports.RealtimeEvent{
			Channel: "user:" + article.AuthorID,
			Name:    event,
			Payload: map[string]any{
				"article_id": article.ID,
				"status":     string(article.Status),
				"message":    message,
			},
		},
	}

	// Articles carry only the author id; resolve the address for email.
	// Resolution failure downgrades to the realtime event alone.
	author, err := s.users.FindByID(context.Background(), article.AuthorID)
	if err != nil {
		s.log.Warn().Err(err).Str("article_id", article.ID).Msg("author lookup failed, email skipped")
	} else {
		html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Newsroom Update</h2>
  <p>Dear %s,</p>
  <p>%s</p>
  <p>This is an automated message from Planning Insights.</p>
</div>`, author.Name, message)
		n.Email = &ports.EmailMessage{To: author.Email, Subject: subject, HTML: html}
	}

	s.notifier.Notify(n)
}
