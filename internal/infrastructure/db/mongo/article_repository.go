package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Article
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepository) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.ApprovalStatus != "" {
		query["approval_status"] = string(filter.ApprovalStatus)
	}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Article
	for cur.Next(ctx) {
		var a domain.Article
		if err := cur.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode article: %w", err)
		}
		items = append(items, &a)
	}
	return items, total, cur.Err()
}

// Publish flips all four publication fields in a single write so no reader
// ever observes a half-published article.
func (r *ArticleRepository) Publish(ctx context.Context, id, reviewedBy string, now time.Time) (*domain.Article, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":          string(domain.ArticlePublished),
			"approval_status": string(domain.ApprovalApproved),
			"is_published":    true,
			"published_at":    now.UTC(),
			"reviewed_by":     reviewedBy,
			"reviewed_at":     now.UTC(),
			"updated_at":      now.UTC(),
		},
		"$unset": bson.M{"rejection_reason": "", "modification_notes": ""},
	})
}

// Reject sends the article back to draft with the rejection reason recorded.
func (r *ArticleRepository) Reject(ctx context.Context, id, reviewedBy, reason string, now time.Time) (*domain.Article, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":           string(domain.ArticleDraft),
			"approval_status":  string(domain.ApprovalRejected),
			"is_published":     false,
			"rejection_reason": reason,
			"reviewed_by":      reviewedBy,
			"reviewed_at":      now.UTC(),
			"updated_at":       now.UTC(),
		},
		"$unset": bson.M{"published_at": "", "modification_notes": ""},
	})
}

func (r *ArticleRepository) RequestModification(ctx context.Context, id, reviewedBy, notes string, now time.Time) (*domain.Article, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":             string(domain.ArticleDraft),
			"approval_status":    string(domain.ApprovalNeedsModification),
			"is_published":       false,
			"modification_notes": notes,
			"reviewed_by":        reviewedBy,
			"reviewed_at":        now.UTC(),
			"updated_at":         now.UTC(),
		},
		"$unset": bson.M{"published_at": "", "rejection_reason": ""},
	})
}

// UpdateContent applies an author edit. When resetApproval is set the same
// write re-enters the approval pipeline: approval fields back to pending,
// publication flags cleared.
func (r *ArticleRepository) UpdateContent(ctx context.Context, id string, patch ports.ArticlePatch, resetApproval bool, now time.Time) (*domain.Article, error) {
	set := bson.M{"updated_at": now.UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Excerpt != nil {
		set["excerpt"] = *patch.Excerpt
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}

	update := bson.M{"$set": set}
	if resetApproval {
		set["approval_status"] = string(domain.ApprovalPending)
		set["status"] = string(domain.ArticlePending)
		set["is_published"] = false
		update["$unset"] = bson.M{"modification_notes": "", "rejection_reason": "", "published_at": ""}
	}

	return r.findAndUpdate(ctx, id, update)
}

func (r *ArticleRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a domain.Article
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return &a, nil
}
