package store

import (
	"context"
	"errors"
	"time"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// UserRepository handles persistence for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	cursor, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]types.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = time.Now()

	result, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return types.User{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// PromoteToAdmin sets the role of the identified user to "admin" and reports
// how many documents were modified.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": "admin"}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.EstimatedDocumentCount(ctx)
}
