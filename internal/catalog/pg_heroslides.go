package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HeroSlideRepo struct{ DB *pgxpool.Pool }

var _ HeroSlideStore = (*HeroSlideRepo)(nil)

const slideCols = `id, title, subtitle, image, display_order, active, created_at`

func (r *HeroSlideRepo) querySlides(ctx context.Context, sql string, args ...any) ([]HeroSlide, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HeroSlide
	for rows.Next() {
		var h HeroSlide
		if err := rows.Scan(&h.ID, &h.Title, &h.Subtitle, &h.Image, &h.DisplayOrder, &h.Active, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HeroSlideRepo) List(ctx context.Context) ([]HeroSlide, error) {
	return r.querySlides(ctx, `SELECT `+slideCols+` FROM hero_slides ORDER BY display_order`)
}

func (r *HeroSlideRepo) ListActive(ctx context.Context) ([]HeroSlide, error) {
	return r.querySlides(ctx, `SELECT `+slideCols+` FROM hero_slides
	                           WHERE active ORDER BY display_order`)
}

func (r *HeroSlideRepo) Get(ctx context.Context, id string) (*HeroSlide, error) {
	var h HeroSlide
	err := r.DB.QueryRow(ctx, `SELECT `+slideCols+` FROM hero_slides WHERE id=$1`, id).
		Scan(&h.ID, &h.Title, &h.Subtitle, &h.Image, &h.DisplayOrder, &h.Active, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HeroSlideRepo) Insert(ctx context.Context, h *HeroSlide) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO hero_slides(id, title, subtitle, image, display_order, active)
	                          VALUES ($1,$2,$3,$4,$5,$6)`,
		h.ID, h.Title, h.Subtitle, h.Image, h.DisplayOrder, h.Active)
	return err
}

func (r *HeroSlideRepo) Update(ctx context.Context, h *HeroSlide) error {
	_, err := r.DB.Exec(ctx, `UPDATE hero_slides SET title=$2, subtitle=$3, image=$4,
	                          display_order=$5, active=$6 WHERE id=$1`,
		h.ID, h.Title, h.Subtitle, h.Image, h.DisplayOrder, h.Active)
	return err
}

func (r *HeroSlideRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM hero_slides WHERE id=$1`, id)
	return err
}
