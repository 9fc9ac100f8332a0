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

const submissionsCollection = "submissions"

// unassignedFilter matches documents with no assigned editor. $in with null
// also matches documents where the field is absent entirely.
var unassignedFilter = bson.M{"$in": bson.A{nil, ""}}

type SubmissionRepository struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection(submissionsCollection)}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return s, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Submission
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return &s, nil
}

func (r *SubmissionRepository) List(ctx context.Context, filter ports.ListSubmissionsFilter) ([]*domain.Submission, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = string(filter.Type)
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.EditorID != "" {
		query["assigned_editor"] = filter.EditorID
	}
	if filter.Assigned != nil {
		if *filter.Assigned {
			query["assigned_editor"] = bson.M{"$nin": bson.A{nil, ""}}
		} else {
			query["assigned_editor"] = unassignedFilter
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Submission
	for cur.Next(ctx) {
		var s domain.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, 0, fmt.Errorf("decode submission: %w", err)
		}
		items = append(items, &s)
	}
	return items, total, cur.Err()
}

// FindUnassigned returns the auto-assignment backlog oldest first: unassigned
// manuscripts in pending/under-review and unassigned research papers in
// completed.
func (r *SubmissionRepository) FindUnassigned(ctx context.Context) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"assigned_editor": unassignedFilter,
		"$or": bson.A{
			bson.M{
				"type":   string(domain.TypeManuscript),
				"status": bson.M{"$in": bson.A{string(domain.SubmissionPending), string(domain.SubmissionUnderReview)}},
			},
			bson.M{
				"type":   string(domain.TypeResearchPaper),
				"status": string(domain.SubmissionCompleted),
			},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find unassigned: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Submission
	for cur.Next(ctx) {
		var s domain.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		items = append(items, &s)
	}
	return items, cur.Err()
}

// AssignIfUnassigned claims the submission for an editor only while nobody
// else holds it. A raced claim matches zero documents and returns ErrConflict.
func (r *SubmissionRepository) AssignIfUnassigned(ctx context.Context, id string, a domain.Assignment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "assigned_editor": unassignedFilter},
		bson.M{"$set": bson.M{
			"assigned_editor": a.EditorID,
			"assigned_by":     a.AssignedBy,
			"assigned_at":     a.AssignedAt.UTC(),
			"status":          string(domain.SubmissionUnderReview),
		}},
	)
	if err != nil {
		return fmt.Errorf("assign submission: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *SubmissionRepository) SetAssignment(ctx context.Context, id string, a domain.Assignment, status *domain.SubmissionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"assigned_editor": a.EditorID,
		"assigned_by":     a.AssignedBy,
		"assigned_at":     a.AssignedAt.UTC(),
	}
	if status != nil {
		set["status"] = string(*status)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set assignment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) ClearAssignment(ctx context.Context, id string, reset domain.SubmissionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"status": string(reset)},
			"$unset": bson.M{"assigned_editor": "", "assigned_by": "", "assigned_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("clear assignment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// ApplyReview writes the review fields only while status still equals expect,
// so a submission that moved underneath the reviewer fails with ErrConflict.
func (r *SubmissionRepository) ApplyReview(ctx context.Context, id string, expect domain.SubmissionStatus, patch ports.ReviewPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":      string(patch.Status),
		"reviewed_by": patch.ReviewedBy,
		"reviewed_at": patch.ReviewedAt.UTC(),
	}
	if patch.EditorRemarks != nil {
		set["editor_remarks"] = *patch.EditorRemarks
	}
	if patch.EditorReviewedAt != nil {
		set["editor_reviewed_at"] = patch.EditorReviewedAt.UTC()
	}
	if patch.AdminRemarks != nil {
		set["admin_remarks"] = *patch.AdminRemarks
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(expect)},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("apply review: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) CountAssigned(ctx context.Context, editorID string, statuses []domain.SubmissionStatus, t domain.SubmissionType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	in := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		in = append(in, string(s))
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"assigned_editor": editorID,
		"status":          bson.M{"$in": in},
		"type":            string(t),
	})
	if err != nil {
		return 0, fmt.Errorf("count assigned: %w", err)
	}
	return n, nil
}

func (r *SubmissionRepository) CountByStatus(ctx context.Context, t domain.SubmissionType) (map[domain.SubmissionStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"type": string(t)}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.SubmissionStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.SubmissionStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

func (r *SubmissionRepository) CountAssignedTotal(ctx context.Context, t domain.SubmissionType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"type":            string(t),
		"assigned_editor": bson.M{"$nin": bson.A{nil, ""}},
	})
	if err != nil {
		return 0, fmt.Errorf("count assigned total: %w", err)
	}
	return n, nil
}
