package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

const roleRequestsCollection = "role_requests"

type RoleRequestRepository struct {
	coll *mongo.Collection
}

func NewRoleRequestRepository(db *mongo.Database) *RoleRequestRepository {
	return &RoleRequestRepository{coll: db.Collection(roleRequestsCollection)}
}

func (r *RoleRequestRepository) Create(ctx context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return nil, fmt.Errorf("insert role request: %w", err)
	}
	return req, nil
}

func (r *RoleRequestRepository) FindByID(ctx context.Context, id string) (*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.RoleRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find role request: %w", err)
	}
	return &req, nil
}

func (r *RoleRequestRepository) List(ctx context.Context, filter ports.ListRoleRequestsFilter) ([]*domain.RoleRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count role requests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list role requests: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.RoleRequest
	for cur.Next(ctx) {
		var req domain.RoleRequest
		if err := cur.Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("decode role request: %w", err)
		}
		items = append(items, &req)
	}
	return items, total, cur.Err()
}

func (r *RoleRequestRepository) HasPending(ctx context.Context, userID string, role domain.Role) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id":        userID,
		"requested_role": string(role),
		"status":         string(domain.RequestPending),
	})
	if err != nil {
		return false, fmt.Errorf("count pending requests: %w", err)
	}
	return n > 0, nil
}

// Resolve writes the disposition only while the request is still pending.
// A request resolved by a concurrent reviewer matches zero documents and the
// first resolution stands.
func (r *RoleRequestRepository) Resolve(ctx context.Context, id string, res ports.Resolution) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(domain.RequestPending)},
		bson.M{"$set": bson.M{
			"status":      string(res.Status),
			"reviewed_by": res.ReviewedBy,
			"reviewed_at": res.ReviewedAt.UTC(),
			"admin_notes": res.AdminNotes,
		}},
	)
	if err != nil {
		return fmt.Errorf("resolve role request: %w", err)
	}
	if out.MatchedCount == 0 {
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrAlreadyReviewed
	}
	return nil
}

func (r *RoleRequestRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete role request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RoleRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.RequestStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.RequestStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}
