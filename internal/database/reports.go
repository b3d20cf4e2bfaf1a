package database

import (
	"context"

	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportRepo builds the joined and grouped views. All of the reshaping runs
// inside MongoDB; nothing here iterates over raw orders.
type ReportRepo struct {
	users  *mongo.Collection
	plants *mongo.Collection
	orders *mongo.Collection
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	return &ReportRepo{
		users:  db.Collection(UsersCollection),
		plants: db.Collection(PlantsCollection),
		orders: db.Collection(OrdersCollection),
	}
}

func (r *ReportRepo) OrdersForCustomer(ctx context.Context, email string) ([]models.OrderView, error) {
	views, err := r.orderViews(ctx, ordersPipeline("customer.email", email))
	if err != nil {
		return nil, apperr.Internal("failed to fetch customer orders", err)
	}
	return views, nil
}

func (r *ReportRepo) OrdersForSeller(ctx context.Context, email string) ([]models.OrderView, error) {
	views, err := r.orderViews(ctx, ordersPipeline("seller", email))
	if err != nil {
		return nil, apperr.Internal("failed to fetch seller orders", err)
	}
	return views, nil
}

func (r *ReportRepo) orderViews(ctx context.Context, pipeline mongo.Pipeline) ([]models.OrderView, error) {
	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	views := []models.OrderView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *ReportRepo) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{ChartData: []models.ChartPoint{}}

	var err error
	if stats.TotalUser, err = r.users.EstimatedDocumentCount(ctx); err != nil {
		return nil, apperr.Internal("failed to count users", err)
	}
	if stats.TotalPlants, err = r.plants.EstimatedDocumentCount(ctx); err != nil {
		return nil, apperr.Internal("failed to count plants", err)
	}

	cur, err := r.orders.Aggregate(ctx, revenuePipeline())
	if err != nil {
		return nil, apperr.Internal("failed to compute revenue", err)
	}
	var totals []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
		TotalOrder   int64   `bson:"totalOrder"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return nil, apperr.Internal("failed to compute revenue", err)
	}
	// no orders yet means no group document
	if len(totals) > 0 {
		stats.TotalRevenue = totals[0].TotalRevenue
		stats.TotalOrder = totals[0].TotalOrder
	}

	cur, err = r.orders.Aggregate(ctx, chartPipeline())
	if err != nil {
		return nil, apperr.Internal("failed to build chart data", err)
	}
	if err := cur.All(ctx, &stats.ChartData); err != nil {
		return nil, apperr.Internal("failed to build chart data", err)
	}

	return stats, nil
}

// ordersPipeline matches orders on field and joins each one to its plant.
// Orders whose plantId is malformed or points at a deleted plant drop out at
// the $unwind.
func ordersPipeline(field, email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: field, Value: email}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "plantObjectId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$plantId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: PlantsCollection},
			{Key: "localField", Value: "plantObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "plants"},
		}}},
		{{Key: "$unwind", Value: "$plants"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: "$plants.name"},
			{Key: "image", Value: "$plants.image"},
			{Key: "category", Value: "$plants.category"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "plants", Value: 0},
			{Key: "plantObjectId", Value: 0},
		}}},
	}
}

func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "totalOrder", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}}}},
	}
}

// chartPipeline buckets orders by the day their ObjectID was minted, newest
// first going in, oldest first coming out.
func chartPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "date", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: bson.D{{Key: "$toDate", Value: "$_id"}}},
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$date"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "price", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "order", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "date", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "price", Value: 1},
			{Key: "order", Value: 1},
		}}},
	}
}
