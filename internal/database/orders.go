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

var ErrOrderDelivered = apperr.Conflict("order already delivered")

type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{coll: db.Collection(OrdersCollection)}
}

func (r *OrderRepo) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	order.ID = primitive.NilObjectID
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return nil, apperr.Internal("failed to save order", err)
	}
	order.ID = objectID(res.InsertedID)
	return &order, nil
}

func (r *OrderRepo) FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal("failed to load order", err)
	}
	return &order, nil
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return models.UpdateResult{}, apperr.Internal("failed to update order status", err)
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, apperr.NotFound("order not found")
	}
	return updateResult(res), nil
}

// DeleteOrder cancels an order. Delivered orders are terminal and stay put.
func (r *OrderRepo) DeleteOrder(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$ne": models.OrderStatusDelivered}}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return models.DeleteResult{}, apperr.Internal("failed to delete order", err)
	}
	if res.DeletedCount == 0 {
		if _, err := r.FindOrder(ctx, id); err != nil {
			return models.DeleteResult{}, err
		}
		return models.DeleteResult{}, ErrOrderDelivered
	}
	return models.DeleteResult{Deleted: res.DeletedCount}, nil
}
