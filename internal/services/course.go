package services

import (
	"context"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseRepository defines persistence operations for catalog entries.
type CourseRepository interface {
	List(ctx context.Context) ([]types.Course, error)
	ListByCategory(ctx context.Context, category string) ([]types.Course, error)
	GetByCourseID(ctx context.Context, courseID string) (types.Course, error)
	Create(ctx context.Context, course types.Course) (types.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	SetImageKey(ctx context.Context, courseID, key string) error
	Count(ctx context.Context) (int64, error)
}

// CourseService encapsulates catalog use-cases.
type CourseService struct {
	repo CourseRepository
}

func NewCourseService(repo CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) List(ctx context.Context) ([]types.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) ListByCategory(ctx context.Context, category string) ([]types.Course, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *CourseService) GetByCourseID(ctx context.Context, courseID string) (types.Course, error) {
	return s.repo.GetByCourseID(ctx, courseID)
}

func (s *CourseService) Create(ctx context.Context, course types.Course) (types.Course, error) {
	return s.repo.Create(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.repo.Delete(ctx, id)
}

func (s *CourseService) SetImageKey(ctx context.Context, courseID, key string) error {
	return s.repo.SetImageKey(ctx, courseID, key)
}

func (s *CourseService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
