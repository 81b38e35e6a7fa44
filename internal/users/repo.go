package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	SetPassword(ctx context.Context, id, hash string) error
	IsAdmin(ctx context.Context, id string) (bool, error)
}

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

const userCols = `id, email, first_name, last_name, phone, street, city,
	postal_code, country, is_admin, password_hash, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone,
		&u.Address.Street, &u.Address.City, &u.Address.PostalCode,
		&u.Address.Country, &u.IsAdmin, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *Repo) Insert(ctx context.Context, u *User) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users(id, email, first_name, last_name, phone, street, city,
		                  postal_code, country, is_admin, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Phone, u.Address.Street,
		u.Address.City, u.Address.PostalCode, u.Address.Country, u.IsAdmin, u.PasswordHash)
	return err
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE users SET first_name=$2, last_name=$3, phone=$4, street=$5,
		       city=$6, postal_code=$7, country=$8
		WHERE id=$1`,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Address.Street,
		u.Address.City, u.Address.PostalCode, u.Address.Country)
	return err
}

func (r *Repo) SetPassword(ctx context.Context, id, hash string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, id, hash)
	return err
}

// IsAdmin is a single uniform lookup; there is no identity special-casing.
func (r *Repo) IsAdmin(ctx context.Context, id string) (bool, error) {
	var admin bool
	err := r.DB.QueryRow(ctx, `SELECT is_admin FROM users WHERE id=$1`, id).Scan(&admin)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return admin, nil
}
