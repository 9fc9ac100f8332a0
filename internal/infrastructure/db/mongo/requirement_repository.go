package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

const requirementsCollection = "requirements"

// RequirementRepository touches the call-for-submissions documents only for
// the counter cascade on submission delete. The rest of that collection is
// owned elsewhere.
type RequirementRepository struct {
	coll *mongo.Collection
}

func NewRequirementRepository(db *mongo.Database) *RequirementRepository {
	return &RequirementRepository{coll: db.Collection(requirementsCollection)}
}

// DecrementSubmissions lowers the submission counter by one, never below zero.
func (r *RequirementRepository) DecrementSubmissions(ctx context.Context, requirementID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": requirementID, "submissions_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"submissions_count": -1}},
	)
	if err != nil {
		return fmt.Errorf("decrement submissions: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("requirement %s: %w", requirementID, domain.ErrNotFound)
	}
	return nil
}
