package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hugh/plantnet/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection  = "users"
	PlantsCollection = "plants"
	OrdersCollection = "orders"
)

func Connect(ctx context.Context, cfg *config.MongoConfig, log *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(5)
	if t := cfg.Timeout(); t > 0 {
		opts.SetConnectTimeout(t).SetServerSelectionTimeout(t)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx := ctx
	if t := cfg.Timeout(); t > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	log.Info("connected to database", "database", cfg.Database)

	return client, nil
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email
// index is what makes user creation idempotent under concurrent sign-ins.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		PlantsCollection: {
			{Keys: bson.D{{Key: "seller.email", Value: 1}}},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "customer.email", Value: 1}}},
			{Keys: bson.D{{Key: "seller", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating %s indexes: %w", coll, err)
		}
	}
	return nil
}

// Store bundles the repositories over one database handle.
type Store struct {
	Users   *UserRepo
	Plants  *PlantRepo
	Orders  *OrderRepo
	Reports *ReportRepo
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:   NewUserRepo(db),
		Plants:  NewPlantRepo(db),
		Orders:  NewOrderRepo(db),
		Reports: NewReportRepo(db),
	}
}
