package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepo struct{ DB *pgxpool.Pool }

var _ CategoryStore = (*CategoryRepo)(nil)

func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, slug, description, created_at
	                              FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.DB.QueryRow(ctx, `SELECT id, name, slug, description, created_at
	                           FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, c *Category) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO categories(id, name, slug, description)
	                          VALUES ($1,$2,$3,$4)`, c.ID, c.Name, c.Slug, c.Description)
	return err
}

func (r *CategoryRepo) Update(ctx context.Context, c *Category) error {
	_, err := r.DB.Exec(ctx, `UPDATE categories SET name=$2, slug=$3, description=$4
	                          WHERE id=$1`, c.ID, c.Name, c.Slug, c.Description)
	return err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return err
}

func (r *CategoryRepo) HasProducts(ctx context.Context, categoryID string) (bool, error) {
	var one int
	err := r.DB.QueryRow(ctx, `SELECT 1 FROM products WHERE category_id=$1 LIMIT 1`, categoryID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
