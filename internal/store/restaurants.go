package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Restaurant struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	ReviewLink string    `json:"review_link"`
	CreatedAt  time.Time `json:"created_at"`
}

type RestaurantStore struct {
	db *pgxpool.Pool
}

func (s *RestaurantStore) Create(ctx context.Context, restaurant *Restaurant) error {
	query := `
        INSERT INTO restaurants (name, address, review_link)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Address,
		restaurant.ReviewLink,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
}

func (s *RestaurantStore) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	query := `
        SELECT id, name, address, review_link, created_at
        FROM restaurants
        WHERE id = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var restaurant Restaurant
	err := s.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.ReviewLink,
		&restaurant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}
