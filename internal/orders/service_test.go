package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maisonnoir/storefront/internal/payments"
)

type fakeStore struct {
	orders  map[string]*Order
	intents map[string]string // order id -> intent id

	setStatusCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*Order{}, intents: map[string]string{}}
}

func (f *fakeStore) CreateOrder(_ context.Context, o *Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, id string) error {
	delete(f.orders, id)
	delete(f.intents, id)
	return nil
}

func (f *fakeStore) SetPaymentIntent(_ context.Context, orderID, intentID string) error {
	f.intents[orderID] = intentID
	if o, ok := f.orders[orderID]; ok {
		o.PaymentIntent = &intentID
	}
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Order, error) {
	return f.orders[id], nil
}

func (f *fakeStore) GetStatus(_ context.Context, id string) (Status, error) {
	o, ok := f.orders[id]
	if !ok {
		return "", ErrOrderNotFound
	}
	return o.Status, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id string, to Status) error {
	f.setStatusCalls++
	o, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = to
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) MarkPaidByIntent(_ context.Context, intentID string) error {
	for id, in := range f.intents {
		if in == intentID {
			f.orders[id].PaymentStatus = PaymentPaid
			return nil
		}
	}
	return ErrOrderNotFound
}

type fakeIntents struct {
	calls   int
	amounts []int64
	fail    bool
}

func (f *fakeIntents) CreateIntent(_ context.Context, amountMinor int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	f.calls++
	f.amounts = append(f.amounts, amountMinor)
	if f.fail {
		return nil, errors.New("card network is down")
	}
	return &payments.Intent{ID: "pi_test_1", ClientSecret: "pi_test_1_secret"}, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newService(store *fakeStore, intents *fakeIntents) *Service {
	return &Service{Store: store, Intents: intents, Currency: "usd"}
}

func cartFixture() []CartLine {
	return []CartLine{
		{ProductID: "p1", Quantity: 2, Price: dec("19.99")},
		{ProductID: "p2", Quantity: 1, Price: dec("5.00")},
	}
}

func TestCheckoutStripeCreatesOneIntent(t *testing.T) {
	store := newFakeStore()
	intents := &fakeIntents{}
	svc := newService(store, intents)

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodStripe,
	})
	require.NoError(t, err)
	require.Equal(t, "44.98", res.Total)
	require.Equal(t, "pi_test_1_secret", res.ClientSecret)

	require.Equal(t, 1, intents.calls, "exactly one payment intent call")
	require.Equal(t, int64(4498), intents.amounts[0], "amount must be round(total*100)")

	o := store.orders[res.OrderID]
	require.NotNil(t, o)
	require.NotNil(t, o.PaymentIntent)
	require.Equal(t, "pi_test_1", *o.PaymentIntent)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, PaymentPending, o.PaymentStatus)
}

func TestCheckoutDefaultMethodIsStripe(t *testing.T) {
	store := newFakeStore()
	intents := &fakeIntents{}
	svc := newService(store, intents)

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID: "u1",
		Items:  cartFixture(),
		// PaymentMethod omitted
	})
	require.NoError(t, err)
	require.Equal(t, 1, intents.calls)
}

func TestCheckoutCashOnDeliverySkipsProcessor(t *testing.T) {
	store := newFakeStore()
	intents := &fakeIntents{}
	svc := newService(store, intents)

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodCashOnDelivery,
	})
	require.NoError(t, err)
	require.Empty(t, res.ClientSecret)
	require.Zero(t, intents.calls, "cash on delivery must never touch the processor")

	o := store.orders[res.OrderID]
	require.Nil(t, o.PaymentIntent)
	require.Equal(t, PaymentPending, o.PaymentStatus)
}

func TestCheckoutIntentFailureCompensates(t *testing.T) {
	store := newFakeStore()
	intents := &fakeIntents{fail: true}
	svc := newService(store, intents)

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodStripe,
	})
	require.ErrorIs(t, err, ErrPaymentIntent)
	require.Empty(t, store.orders, "failed checkout must not leave an order behind")
}

func TestCheckoutCopiesCartPrices(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, &fakeIntents{})

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodCashOnDelivery,
	})
	require.NoError(t, err)

	// the item rows keep the cart price; the live product price never
	// participates, so historical totals cannot drift
	o := store.orders[res.OrderID]
	require.Len(t, o.Items, 2)
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	require.True(t, sum.Equal(o.Total), "sum(price*qty) = %s, total = %s", sum, o.Total)
	require.True(t, o.Items[0].Price.Equal(dec("19.99")))
}

func TestCheckoutRejectsEmptyAndInvalidItems(t *testing.T) {
	svc := newService(newFakeStore(), &fakeIntents{})

	_, err := svc.Checkout(context.Background(), CheckoutInput{UserID: "u1"})
	require.ErrorIs(t, err, ErrNoItems)

	_, err = svc.Checkout(context.Background(), CheckoutInput{
		UserID: "u1",
		Items:  []CartLine{{ProductID: "p1", Quantity: 0, Price: dec("10")}},
	})
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, &fakeIntents{})

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodCashOnDelivery,
	})
	require.NoError(t, err)

	// legal walk to delivered
	for _, next := range []Status{StatusProcessing, StatusShipped, StatusDelivered} {
		require.NoError(t, svc.UpdateStatus(context.Background(), res.OrderID, next))
	}

	// delivered is terminal; nothing may be written for an illegal move
	writes := store.setStatusCalls
	err = svc.UpdateStatus(context.Background(), res.OrderID, StatusPending)
	require.ErrorIs(t, err, ErrBadTransition)
	require.Equal(t, writes, store.setStatusCalls)

	err = svc.UpdateStatus(context.Background(), res.OrderID, Status("whatever"))
	require.ErrorIs(t, err, ErrBadTransition)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newService(newFakeStore(), &fakeIntents{})
	err := svc.UpdateStatus(context.Background(), "missing", StatusProcessing)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetByIDMissingIsNilNotError(t *testing.T) {
	svc := newService(newFakeStore(), &fakeIntents{})
	o, err := svc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, o)
}

func TestMarkPaid(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, &fakeIntents{})

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:        "u1",
		Items:         cartFixture(),
		PaymentMethod: MethodStripe,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(context.Background(), "pi_test_1"))
	require.Equal(t, PaymentPaid, store.orders[res.OrderID].PaymentStatus)
}
