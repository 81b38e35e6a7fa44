package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollectionRepo struct{ DB *pgxpool.Pool }

var _ CollectionStore = (*CollectionRepo)(nil)

const collectionCols = `id, name, slug, description, hero_image, active, created_at`

func scanCollection(row pgx.Row) (*Collection, error) {
	var c Collection
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.HeroImage, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepo) queryCollections(ctx context.Context, sql string, args ...any) ([]Collection, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CollectionRepo) List(ctx context.Context) ([]Collection, error) {
	return r.queryCollections(ctx, `SELECT `+collectionCols+` FROM collections ORDER BY name`)
}

func (r *CollectionRepo) ListActive(ctx context.Context) ([]Collection, error) {
	return r.queryCollections(ctx, `SELECT `+collectionCols+` FROM collections
	                                WHERE active ORDER BY created_at DESC`)
}

func (r *CollectionRepo) ListFeatured(ctx context.Context, limit int) ([]Collection, error) {
	return r.queryCollections(ctx, `SELECT `+collectionCols+` FROM collections
	                                WHERE active ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *CollectionRepo) GetBySlug(ctx context.Context, slug string) (*Collection, error) {
	c, err := scanCollection(r.DB.QueryRow(ctx, `SELECT `+collectionCols+`
	                                             FROM collections WHERE slug=$1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CollectionRepo) Insert(ctx context.Context, c *Collection) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO collections(id, name, slug, description, hero_image, active)
	                          VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.Name, c.Slug, c.Description, c.HeroImage, c.Active)
	return err
}

func (r *CollectionRepo) Update(ctx context.Context, c *Collection) error {
	_, err := r.DB.Exec(ctx, `UPDATE collections SET name=$2, slug=$3, description=$4,
	                          hero_image=$5, active=$6 WHERE id=$1`,
		c.ID, c.Name, c.Slug, c.Description, c.HeroImage, c.Active)
	return err
}

func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM collections WHERE id=$1`, id)
	return err
}

func (r *CollectionRepo) ProductIDs(ctx context.Context, collectionID string) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT product_id FROM collection_products
	                              WHERE collection_id=$1 ORDER BY display_order`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *CollectionRepo) PublishedProducts(ctx context.Context, collectionID string) ([]Product, error) {
	pr := &ProductRepo{DB: r.DB}
	return pr.queryProducts(ctx, `
		SELECT `+productCols+` FROM products
		JOIN collection_products cp ON cp.product_id = products.id
		WHERE cp.collection_id=$1 AND products.published
		ORDER BY cp.display_order`, collectionID)
}

func (r *CollectionRepo) HasProduct(ctx context.Context, collectionID, productID string) (bool, error) {
	var one int
	err := r.DB.QueryRow(ctx, `SELECT 1 FROM collection_products
	                           WHERE collection_id=$1 AND product_id=$2 LIMIT 1`,
		collectionID, productID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CollectionRepo) AddProduct(ctx context.Context, collectionID, productID string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO collection_products(collection_id, product_id, display_order)
		VALUES ($1, $2, COALESCE((SELECT MAX(display_order)+1 FROM collection_products
		                          WHERE collection_id=$1), 0))
		ON CONFLICT (collection_id, product_id) DO NOTHING`, collectionID, productID)
	return err
}

func (r *CollectionRepo) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM collection_products
	                          WHERE collection_id=$1 AND product_id=$2`, collectionID, productID)
	return err
}

func (r *CollectionRepo) SetDisplayOrder(ctx context.Context, collectionID, productID string, order int) error {
	_, err := r.DB.Exec(ctx, `UPDATE collection_products SET display_order=$3
	                          WHERE collection_id=$1 AND product_id=$2`,
		collectionID, productID, order)
	return err
}
