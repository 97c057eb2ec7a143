package store

import (
	"context"
	"errors"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const coursesCollection = "allCourses"

// CourseRepository handles persistence for catalog entries. The same
// collection backs the course and instructor listings.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(coursesCollection)}
}

func (r *CourseRepository) List(ctx context.Context) ([]types.Course, error) {
	return r.find(ctx, bson.D{})
}

func (r *CourseRepository) ListByCategory(ctx context.Context, category string) ([]types.Course, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *CourseRepository) find(ctx context.Context, filter any) ([]types.Course, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := make([]types.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByCourseID looks up a course by its stable public identifier, not the
// document id.
func (r *CourseRepository) GetByCourseID(ctx context.Context, courseID string) (types.Course, error) {
	var course types.Course
	err := r.col.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Course{}, ErrNotFound
		}
		return types.Course{}, err
	}
	return course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course types.Course) (types.Course, error) {
	result, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return types.Course{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid
	}
	return course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// SetImageKey records the object-storage key of an uploaded course image.
func (r *CourseRepository) SetImageKey(ctx context.Context, courseID, key string) error {
	result, err := r.col.UpdateOne(ctx, bson.M{"course_id": courseID}, bson.M{"$set": bson.M{"image_key": key}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.col.EstimatedDocumentCount(ctx)
}
