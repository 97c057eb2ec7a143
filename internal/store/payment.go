package store

import (
	"context"
	"time"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const paymentsCollection = "payments"

// PaymentRepository handles persistence for payments. It also touches the
// carts collection inside the checkout transaction.
type PaymentRepository struct {
	client   *mongo.Client
	payments *mongo.Collection
	carts    *mongo.Collection
}

func NewPaymentRepository(client *mongo.Client, db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		client:   client,
		payments: db.Collection(paymentsCollection),
		carts:    db.Collection(cartsCollection),
	}
}

func (r *PaymentRepository) List(ctx context.Context) ([]types.Payment, error) {
	cursor, err := r.payments.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := make([]types.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// RecordCheckout inserts the payment and removes the purchased cart items in
// one transaction, so a checkout either fully completes or fully rolls back.
// It returns the stored payment and the number of cart items removed.
func (r *PaymentRepository) RecordCheckout(ctx context.Context, payment types.Payment, cartIDs []primitive.ObjectID) (types.Payment, int64, error) {
	payment.CreatedAt = time.Now()

	session, err := r.client.StartSession()
	if err != nil {
		return types.Payment{}, 0, err
	}
	defer session.EndSession(ctx)

	var deleted int64
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		result, err := r.payments.InsertOne(sc, payment)
		if err != nil {
			return nil, err
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			payment.ID = oid
		}

		deleteResult, err := r.carts.DeleteMany(sc, bson.M{"_id": bson.M{"$in": cartIDs}})
		if err != nil {
			return nil, err
		}
		deleted = deleteResult.DeletedCount
		return nil, nil
	})
	if err != nil {
		return types.Payment{}, 0, err
	}

	return payment, deleted, nil
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	return r.payments.EstimatedDocumentCount(ctx)
}
