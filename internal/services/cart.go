package services

import (
	"context"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]types.CartItem, error)
	Create(ctx context.Context, item types.CartItem) (types.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CartService encapsulates cart use-cases.
type CartService struct {
	repo CartRepository
}

func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) ListByEmail(ctx context.Context, email string) ([]types.CartItem, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *CartService) Add(ctx context.Context, item types.CartItem) (types.CartItem, error) {
	return s.repo.Create(ctx, item)
}

func (s *CartService) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.repo.Delete(ctx, id)
}
