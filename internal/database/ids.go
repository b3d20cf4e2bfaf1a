package database

import (
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ParseID turns a hex path parameter into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("invalid id")
	}
	return id, nil
}

func objectID(v interface{}) primitive.ObjectID {
	if id, ok := v.(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}
