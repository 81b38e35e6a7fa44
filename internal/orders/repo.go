package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store interface {
	CreateOrder(ctx context.Context, o *Order) error
	DeleteOrder(ctx context.Context, id string) error
	SetPaymentIntent(ctx context.Context, orderID, intentID string) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetStatus(ctx context.Context, id string) (Status, error)
	SetStatus(ctx context.Context, id string, to Status) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	MarkPaidByIntent(ctx context.Context, intentID string) error
}

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

var ErrOrderNotFound = errors.New("order not found")

// CreateOrder inserts the order row and every item row in one transaction,
// so a failed item insert never leaves a headless order behind.
func (r *Repo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, total, status, payment_status,
		                   ship_first_name, ship_last_name, ship_street, ship_city,
		                   ship_postal_code, ship_country, ship_phone)
		VALUES ($1,$2,$3::numeric,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		o.ID, o.UserID, o.Total.String(), string(o.Status), string(o.PaymentStatus),
		o.ShippingAddress.FirstName, o.ShippingAddress.LastName, o.ShippingAddress.Street,
		o.ShippingAddress.City, o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		o.ShippingAddress.Phone)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price, size, color)
			VALUES ($1,$2,$3,$4::numeric,$5,$6)`,
			o.ID, it.ProductID, it.Quantity, it.Price.String(), it.Size, it.Color)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteOrder is the checkout compensation path: items first, then the row.
func (r *Repo) DeleteOrder(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) SetPaymentIntent(ctx context.Context, orderID, intentID string) error {
	_, err := r.DB.Exec(ctx, `UPDATE orders SET payment_intent=$2 WHERE id=$1`, orderID, intentID)
	return err
}

const orderCols = `id, user_id, total::text, status, payment_status, payment_intent,
	ship_first_name, ship_last_name, ship_street, ship_city, ship_postal_code,
	ship_country, ship_phone, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o      Order
		total  string
		status string
		pay    string
	)
	err := row.Scan(&o.ID, &o.UserID, &total, &status, &pay, &o.PaymentIntent,
		&o.ShippingAddress.FirstName, &o.ShippingAddress.LastName,
		&o.ShippingAddress.Street, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.ShippingAddress.Phone, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	o.Status = Status(status)
	o.PaymentStatus = PaymentStatus(pay)
	return &o, nil
}

// GetByID returns (nil, nil) for an unknown id; absence is not an error.
func (r *Repo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.price::text, oi.size, oi.color,
		       COALESCE(p.name, ''), COALESCE(p.images[1], '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &price,
			&it.Size, &it.Color, &it.ProductName, &it.ProductImage); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *Repo) GetStatus(ctx context.Context, id string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

func (r *Repo) SetStatus(ctx context.Context, id string, to Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(to))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repo) queryOrders(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderCols+` FROM orders
	                           WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
}

func (r *Repo) MarkPaidByIntent(ctx context.Context, intentID string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET payment_status=$2 WHERE payment_intent=$1`,
		intentID, string(PaymentPaid))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
