package database

import (
	"context"
	"errors"

	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrInsufficientStock = apperr.Conflict("not enough stock")

type PlantRepo struct {
	coll *mongo.Collection
}

func NewPlantRepo(db *mongo.Database) *PlantRepo {
	return &PlantRepo{coll: db.Collection(PlantsCollection)}
}

func (r *PlantRepo) ListPlants(ctx context.Context) ([]models.Plant, error) {
	return r.find(ctx, bson.M{})
}

func (r *PlantRepo) ListPlantsBySeller(ctx context.Context, email string) ([]models.Plant, error) {
	return r.find(ctx, bson.M{"seller.email": email})
}

func (r *PlantRepo) find(ctx context.Context, filter bson.M) ([]models.Plant, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to list plants", err)
	}
	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, apperr.Internal("failed to list plants", err)
	}
	return plants, nil
}

func (r *PlantRepo) FindPlant(ctx context.Context, id primitive.ObjectID) (*models.Plant, error) {
	var plant models.Plant
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&plant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("plant not found")
		}
		return nil, apperr.Internal("failed to load plant", err)
	}
	return &plant, nil
}

func (r *PlantRepo) CreatePlant(ctx context.Context, plant models.Plant) (*models.Plant, error) {
	plant.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, plant)
	if err != nil {
		return nil, apperr.Internal("failed to create plant", err)
	}
	plant.ID = objectID(res.InsertedID)
	return &plant, nil
}

// DeletePlant removes a plant owned by sellerEmail. Orders that reference it
// are left alone.
func (r *PlantRepo) DeletePlant(ctx context.Context, id primitive.ObjectID, sellerEmail string) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "seller.email": sellerEmail})
	if err != nil {
		return models.DeleteResult{}, apperr.Internal("failed to delete plant", err)
	}
	if res.DeletedCount == 0 {
		if _, err := r.FindPlant(ctx, id); err != nil {
			return models.DeleteResult{}, err
		}
		return models.DeleteResult{}, apperr.Forbidden("only the owning seller can delete this plant")
	}
	return models.DeleteResult{Deleted: res.DeletedCount}, nil
}

// AdjustQuantity applies a signed stock delta atomically. Decrements only
// match while enough stock remains, so quantity never drops below zero.
func (r *PlantRepo) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int64) (models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, quantityFilter(id, delta), bson.M{"$inc": bson.M{"quantity": delta}})
	if err != nil {
		return models.UpdateResult{}, apperr.Internal("failed to update quantity", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindPlant(ctx, id); err != nil {
			return models.UpdateResult{}, err
		}
		return models.UpdateResult{}, ErrInsufficientStock
	}
	return updateResult(res), nil
}

func quantityFilter(id primitive.ObjectID, delta int64) bson.M {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	return filter
}
