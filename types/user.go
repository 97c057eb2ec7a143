package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user document.
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Name is the user's display or full name.
	Name string `json:"name" bson:"name"`

	// Email is the user's email address. Unique across the store.
	Email string `json:"email" bson:"email"`

	// PhotoURL is an optional avatar URL submitted at registration.
	PhotoURL string `json:"photoURL,omitempty" bson:"photoURL,omitempty"`

	// Role indicates the user's authorization level within the
	// system (e.g., "admin", "student").
	Role string `json:"role,omitempty" bson:"role,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
