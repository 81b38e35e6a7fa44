package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/maisonnoir/storefront/internal/events"
	kafkax "github.com/maisonnoir/storefront/internal/kafka"
	"github.com/maisonnoir/storefront/internal/payments"
	"github.com/maisonnoir/storefront/internal/revalidate"
)

var (
	ErrNoItems       = errors.New("order has no items")
	ErrInvalidItem   = errors.New("invalid order item")
	ErrPaymentIntent = errors.New("payment intent creation failed")
	ErrBadTransition = errors.New("illegal status transition")
)

type Service struct {
	Store   Store
	Intents payments.IntentCreator
	Reval   *revalidate.Publisher

	ProducerCreated *kafkax.Producer // order.created
	ProducerStatus  *kafkax.Producer // order.status.changed
	ServiceName     string
	Currency        string
}

type CheckoutInput struct {
	UserID          string
	Items           []CartLine
	ShippingAddress Address
	PaymentMethod   string // "", "stripe" or "cash_on_delivery"
}

type CheckoutResult struct {
	OrderID      string `json:"order_id"`
	Total        string `json:"total"`
	ClientSecret string `json:"client_secret,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Checkout creates the order and its items atomically, then asks the
// payment processor for an intent unless the order is cash on delivery.
// If the intent call fails, the order and items are deleted again and the
// failure is reported; nothing half-created survives.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	total := decimal.Zero
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product=%s qty=%d", ErrInvalidItem, line.ProductID, line.Quantity)
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		Total:           total,
		ShippingAddress: in.ShippingAddress,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
	}
	for _, line := range in.Items {
		o.Items = append(o.Items, Item{
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price, // cart price at order time, on purpose
			Size:      line.Size,
			Color:     line.Color,
		})
	}
	if err := s.Store.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	res := &CheckoutResult{OrderID: o.ID, Total: total.String()}

	if in.PaymentMethod != MethodCashOnDelivery {
		amount := total.Mul(hundred).Round(0).IntPart()
		intent, err := s.Intents.CreateIntent(ctx, amount, s.Currency, map[string]string{
			"order_id": o.ID,
			"user_id":  in.UserID,
		})
		if err != nil {
			// compensate: the order must not survive without its intent
			_ = s.Store.DeleteOrder(ctx, o.ID)
			return nil, fmt.Errorf("%w: %v", ErrPaymentIntent, err)
		}
		if err := s.Store.SetPaymentIntent(ctx, o.ID, intent.ID); err != nil {
			_ = s.Store.DeleteOrder(ctx, o.ID)
			return nil, err
		}
		res.ClientSecret = intent.ClientSecret
	}

	s.publishCreated(o, in.PaymentMethod)
	s.Reval.Paths(revalidate.PathAdminOrders, revalidate.PathAccountOrders)
	return res, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.Store.ListAll(ctx)
}

// UpdateStatus rejects anything the transition table does not allow;
// nothing is written for an illegal move.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrBadTransition, to)
	}
	from, err := s.Store.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, from, to)
	}
	if err := s.Store.SetStatus(ctx, id, to); err != nil {
		return err
	}
	s.publishStatusChanged(id, from, to)
	s.Reval.Paths(revalidate.PathAdminOrders, revalidate.PathAccountOrders)
	return nil
}

// MarkPaid flips payment_status once the processor confirms the intent.
func (s *Service) MarkPaid(ctx context.Context, intentID string) error {
	return s.Store.MarkPaidByIntent(ctx, intentID)
}

func (s *Service) publishCreated(o *Order, method string) {
	if s.ProducerCreated == nil {
		return
	}
	ev := events.New(EventOrderCreated, s.ServiceName, "", o.ID, kafkax.MustMarshal(OrderCreatedPayload{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Total:         o.Total.String(),
		PaymentMethod: method,
		ItemCount:     len(o.Items),
	}))
	s.ProducerCreated.Publish(events.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) publishStatusChanged(orderID string, from, to Status) {
	if s.ProducerStatus == nil {
		return
	}
	ev := events.New(EventOrderStatusChanged, s.ServiceName, "", orderID, kafkax.MustMarshal(OrderStatusChangedPayload{
		OrderID: orderID,
		From:    from,
		To:      to,
	}))
	s.ProducerStatus.Publish(events.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
