package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ DB *pgxpool.Pool }

var _ ProductStore = (*ProductRepo)(nil)

// Money columns travel as text so NUMERIC precision survives the round trip.
const productCols = `id, name, description, price::text, sale_price::text,
	COALESCE(category_id,''), stock_status, stock_quantity, images, tags,
	featured, published, sku, sizes, colors, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p      Product
		price  string
		sale   *string
		status string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &sale,
		&p.CategoryID, &status, &p.StockQuantity, &p.Images, &p.Tags,
		&p.Featured, &p.Published, &p.SKU, &p.Sizes, &p.Colors,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	if sale != nil {
		d, err := decimal.NewFromString(*sale)
		if err != nil {
			return nil, err
		}
		p.SalePrice = &d
	}
	p.StockStatus = StockStatus(status)
	return &p, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
}

func (r *ProductRepo) ListPublished(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productCols+` FROM products
	                             WHERE published ORDER BY created_at DESC`)
}

func (r *ProductRepo) ListFeatured(ctx context.Context, limit int) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productCols+` FROM products
	                             WHERE published AND featured
	                             ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func saleArg(p *Product) *string {
	if p.SalePrice == nil {
		return nil
	}
	s := p.SalePrice.String()
	return &s
}

func (r *ProductRepo) Insert(ctx context.Context, p *Product) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, price, sale_price, category_id,
		                     stock_status, stock_quantity, images, tags, featured,
		                     published, sku, sizes, colors)
		VALUES ($1,$2,$3,$4::numeric,$5::numeric,NULLIF($6,''),$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.Name, p.Description, p.Price.String(), saleArg(p), p.CategoryID,
		string(p.StockStatus), p.StockQuantity, p.Images, p.Tags, p.Featured,
		p.Published, p.SKU, p.Sizes, p.Colors)
	return err
}

func (r *ProductRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4::numeric,
		       sale_price=$5::numeric, category_id=NULLIF($6,''), stock_status=$7,
		       stock_quantity=$8, images=$9, tags=$10, featured=$11, published=$12,
		       sku=$13, sizes=$14, colors=$15, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price.String(), saleArg(p), p.CategoryID,
		string(p.StockStatus), p.StockQuantity, p.Images, p.Tags, p.Featured,
		p.Published, p.SKU, p.Sizes, p.Colors)
	return err
}

// Delete surfaces the foreign-key error verbatim when order items still
// reference the product.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}
