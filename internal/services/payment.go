package services

import (
	"context"
	"errors"
	"log"

	"github.com/fa-emon/glamhub-server/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ordersChannel is the broker channel checkout events are published to.
const ordersChannel = "orders"

// ErrInvalidCartItemID is returned when a submitted cart item id is not a
// valid document id.
var ErrInvalidCartItemID = errors.New("invalid cart item id")

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	List(ctx context.Context) ([]types.Payment, error)
	RecordCheckout(ctx context.Context, payment types.Payment, cartIDs []primitive.ObjectID) (types.Payment, int64, error)
	Count(ctx context.Context) (int64, error)
}

// IntentCreator creates a payment intent with the remote processor and
// returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// EventPublisher publishes checkout events to a broker channel.
type EventPublisher interface {
	PublishJSON(ctx context.Context, channel string, v any, attrs map[string]string) (string, error)
}

// PaymentService encapsulates checkout use-cases.
type PaymentService struct {
	repo     PaymentRepository
	intents  IntentCreator
	events   EventPublisher
	currency string
}

func NewPaymentService(repo PaymentRepository, intents IntentCreator, events EventPublisher, currency string) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{
		repo:     repo,
		intents:  intents,
		events:   events,
		currency: currency,
	}
}

// CreateIntent converts the price to the processor's minor units and requests
// a card payment intent. The price is not validated.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(price * 100)
	return s.intents.CreateIntent(ctx, amount, s.currency)
}

// CheckoutEvent is the payload published after a checkout is recorded.
type CheckoutEvent struct {
	PaymentID string   `json:"payment_id"`
	Email     string   `json:"email"`
	Price     float64  `json:"price"`
	CartIDs   []string `json:"cart_ids"`
}

// Checkout records the payment and removes the purchased cart items, then
// publishes an order event when a broker is configured. Publishing is
// best-effort; a broker failure does not fail the checkout.
func (s *PaymentService) Checkout(ctx context.Context, payment types.Payment) (types.Payment, int64, error) {
	cartIDs := make([]primitive.ObjectID, 0, len(payment.CartItemIDs))
	for _, raw := range payment.CartItemIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return types.Payment{}, 0, ErrInvalidCartItemID
		}
		cartIDs = append(cartIDs, id)
	}

	recorded, deleted, err := s.repo.RecordCheckout(ctx, payment, cartIDs)
	if err != nil {
		return types.Payment{}, 0, err
	}

	if s.events != nil {
		event := CheckoutEvent{
			PaymentID: recorded.ID.Hex(),
			Email:     recorded.Email,
			Price:     recorded.Price,
			CartIDs:   recorded.CartItemIDs,
		}
		if _, err := s.events.PublishJSON(ctx, ordersChannel, event, nil); err != nil {
			log.Printf("orders event publish failed: %v", err)
		}
	}

	return recorded, deleted, nil
}

// Revenue sums the price of every payment record. This is a full scan; there
// is no cached aggregate.
func (s *PaymentService) Revenue(ctx context.Context) (float64, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var revenue float64
	for _, payment := range payments {
		revenue += payment.Price
	}
	return revenue, nil
}

func (s *PaymentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
