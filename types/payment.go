package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed checkout. Payments are never mutated once
// written.
type Payment struct {
	// ID is the unique identifier of the payment document.
	ID primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`

	// Email is the paying user's email address.
	Email string `json:"email" bson:"email"`

	// Price is the total charged, in whole currency units.
	Price float64 `json:"price" bson:"price"`

	// TransactionID is the processor-side transaction reference.
	TransactionID string `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`

	// CartItemIDs lists the cart documents purchased by this payment. The
	// listed items are removed from the cart when the payment is recorded.
	CartItemIDs []string `json:"cart_ids" bson:"cart_ids"`

	// CourseIDs lists the purchased courses.
	CourseIDs []string `json:"course_ids,omitempty" bson:"course_ids,omitempty"`

	// CreatedAt is the timestamp the payment was recorded.
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
