package database

import (
	"context"
	"errors"
	"time"

	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrRoleAlreadyRequested = apperr.BadRequest("you have already requested, wait for some time")

type UserRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(UsersCollection), now: time.Now}
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}

// CreateUserIfAbsent inserts user as a Customer unless the email is already
// registered, in which case the stored record is returned untouched. The
// boolean reports whether an insert happened.
func (r *UserRepo) CreateUserIfAbsent(ctx context.Context, user models.User) (*models.User, bool, error) {
	existing, err := r.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, false, err
	}

	user.ID = primitive.NilObjectID
	user.Role = models.RoleCustomer
	user.Status = models.UserStatusNone
	user.Timestamp = r.now().UnixMilli()

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		// Lost a race against a concurrent sign-in; the unique index kept one.
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := r.FindUserByEmail(ctx, user.Email)
			return existing, false, findErr
		}
		return nil, false, apperr.Internal("failed to create user", err)
	}
	user.ID = objectID(res.InsertedID)
	return &user, true, nil
}

func (r *UserRepo) ListUsersExcept(ctx context.Context, email string) ([]models.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

// RequestRoleChange marks the user's status as Requested. A request that is
// already pending is rejected.
func (r *UserRepo) RequestRoleChange(ctx context.Context, email string) (models.UpdateResult, error) {
	filter := bson.M{
		"email":  email,
		"status": bson.M{"$ne": models.UserStatusRequested},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": models.UserStatusRequested}})
	if err != nil {
		return models.UpdateResult{}, apperr.Internal("failed to request role change", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindUserByEmail(ctx, email); err != nil {
			return models.UpdateResult{}, err
		}
		return models.UpdateResult{}, ErrRoleAlreadyRequested
	}
	return updateResult(res), nil
}

// ApproveRole sets the role and marks the user Verified in one write.
func (r *UserRepo) ApproveRole(ctx context.Context, email string, role models.Role) (models.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"role": role, "status": models.UserStatusVerified}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return models.UpdateResult{}, apperr.Internal("failed to update role", err)
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, apperr.NotFound("user not found")
	}
	return updateResult(res), nil
}
