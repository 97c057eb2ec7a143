package store

import (
	"context"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const cartsCollection = "carts"

// CartRepository handles persistence for cart items.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(cartsCollection)}
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]types.CartItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]types.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepository) Create(ctx context.Context, item types.CartItem) (types.CartItem, error) {
	result, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return types.CartItem{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return item, nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
