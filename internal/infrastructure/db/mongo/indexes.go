package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func collectionIndexes(db *mongo.Database) map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		submissionsCollection: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "assigned_editor", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		roleRequestsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "requested_role", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		articlesCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "approval_status", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}
}
