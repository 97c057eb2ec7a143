package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course represents a catalog entry. The same collection backs both the
// course and instructor listings.
type Course struct {
	// ID is the unique identifier of the course document.
	ID primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`

	// CourseID is the stable public identifier, fixed once created.
	CourseID string `json:"course_id" bson:"course_id"`

	// Name is the course title.
	Name string `json:"course_name" bson:"course_name"`

	// Category groups courses for the category listings.
	Category string `json:"category" bson:"category"`

	// Instructor is the display name of the instructor teaching the course.
	Instructor string `json:"instructor_name" bson:"instructor_name"`

	// InstructorEmail references the instructor's account.
	InstructorEmail string `json:"instructor_email,omitempty" bson:"instructor_email,omitempty"`

	// Price is the course price in whole currency units.
	Price float64 `json:"price" bson:"price"`

	// Image is the course image URL shown in the catalog.
	Image string `json:"image,omitempty" bson:"image,omitempty"`

	// ImageKey is the object-storage key of an uploaded course image.
	ImageKey string `json:"image_key,omitempty" bson:"image_key,omitempty"`

	// Description is the free-form course description.
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// AvailableSeats is the number of seats still open.
	AvailableSeats int `json:"available_seats,omitempty" bson:"available_seats,omitempty"`
}
