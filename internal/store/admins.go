package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateEmail = errors.New("an admin with that email already exists")

type Admin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     password  `json:"-"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// password keeps the plaintext out of JSON and the hash out of handler code.
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

type AdminStore struct {
	db *pgxpool.Pool
}

func (s *AdminStore) Create(ctx context.Context, admin *Admin) error {
	query := `
        INSERT INTO admin_users (name, email, password, restaurant_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.Password.hash,
		admin.RestaurantID,
	).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *AdminStore) GetByID(ctx context.Context, id int64) (*Admin, error) {
	query := `
        SELECT id, name, email, password, restaurant_id, created_at
        FROM admin_users
        WHERE id = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.scanAdmin(s.db.QueryRow(ctx, query, id))
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
        SELECT id, name, email, password, restaurant_id, created_at
        FROM admin_users
        WHERE email = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.scanAdmin(s.db.QueryRow(ctx, query, email))
}

func (s *AdminStore) scanAdmin(row pgx.Row) (*Admin, error) {
	var admin Admin
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.Password.hash,
		&admin.RestaurantID,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
