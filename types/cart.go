package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a course placed in a user's cart. Ownership is by email; cart
// reads must match the authenticated identity.
type CartItem struct {
	// ID is the unique identifier of the cart document.
	ID primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`

	// Email is the owning user's email address.
	Email string `json:"email" bson:"email"`

	// CourseID references the course added to the cart.
	CourseID string `json:"course_id" bson:"course_id"`

	// Name is the course title, denormalized for cart display.
	Name string `json:"course_name,omitempty" bson:"course_name,omitempty"`

	// Price is the course price at the time it was added.
	Price float64 `json:"price" bson:"price"`

	// Image is the course image URL, denormalized for cart display.
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}
