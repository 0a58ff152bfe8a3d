package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Feedback struct {
	ID                int64      `json:"id"`
	RestaurantID      int64      `json:"restaurant_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	ConsumedItem      string     `json:"consumed_item"`
	Rating            int        `json:"rating"` // 1-5
	ConsentGiven      bool       `json:"consent_given"`
	NegativeComment   *string    `json:"negative_comment"`
	ReviewLink        *string    `json:"review_link"`
	CouponCode        *string    `json:"coupon_code"`
	CouponValidated   bool       `json:"coupon_validated"`
	CouponValidatedAt *time.Time `json:"coupon_validated_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

type FeedbackStore struct {
	db *pgxpool.Pool
}

const feedbackColumns = `
        id, restaurant_id, name, email, phone, consumed_item, rating,
        consent_given, negative_comment, review_link, coupon_code,
        coupon_validated, coupon_validated_at, created_at`

func scanFeedback(row pgx.Row, f *Feedback) error {
	return row.Scan(
		&f.ID,
		&f.RestaurantID,
		&f.Name,
		&f.Email,
		&f.Phone,
		&f.ConsumedItem,
		&f.Rating,
		&f.ConsentGiven,
		&f.NegativeComment,
		&f.ReviewLink,
		&f.CouponCode,
		&f.CouponValidated,
		&f.CouponValidatedAt,
		&f.CreatedAt,
	)
}

func (s *FeedbackStore) Create(ctx context.Context, f *Feedback) error {
	query := `
        INSERT INTO feedbacks
            (restaurant_id, name, email, phone, consumed_item, rating,
             consent_given, negative_comment, review_link, coupon_code)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		f.RestaurantID,
		f.Name,
		f.Email,
		f.Phone,
		f.ConsumedItem,
		f.Rating,
		f.ConsentGiven,
		f.NegativeComment,
		f.ReviewLink,
		f.CouponCode,
	).Scan(&f.ID, &f.CreatedAt)
}

func (s *FeedbackStore) GetByID(ctx context.Context, id int64) (*Feedback, error) {
	query := `SELECT` + feedbackColumns + `
        FROM feedbacks
        WHERE id = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var f Feedback
	if err := scanFeedback(s.db.QueryRow(ctx, query, id), &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (s *FeedbackStore) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Feedback, error) {
	query := `SELECT` + feedbackColumns + `
        FROM feedbacks
        WHERE restaurant_id = $1
        ORDER BY id DESC
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []Feedback
	for rows.Next() {
		var f Feedback
		if err := scanFeedback(rows, &f); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}

// AttachCoupon sets the coupon code only when none exists yet, so two
// concurrent confirmations cannot both attach a code. The loser gets
// ErrConflict and should re-read the winning code.
func (s *FeedbackStore) AttachCoupon(ctx context.Context, feedbackID int64, code string) error {
	query := `
        UPDATE feedbacks
        SET coupon_code = $2
        WHERE id = $1 AND coupon_code IS NULL
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ct, err := s.db.Exec(ctx, query, feedbackID, code)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// ValidateCoupon redeems a coupon with a single conditional update: the flag
// and the timestamp change together, and of two concurrent callers exactly one
// matches the WHERE clause. When no row matches, a follow-up read classifies
// the rejection.
func (s *FeedbackStore) ValidateCoupon(ctx context.Context, feedbackID, restaurantID int64) (*Feedback, error) {
	query := `
        UPDATE feedbacks
        SET coupon_validated = true, coupon_validated_at = now()
        WHERE id = $1
          AND restaurant_id = $2
          AND coupon_code IS NOT NULL
          AND coupon_validated = false
        RETURNING` + feedbackColumns + `
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var f Feedback
	err := scanFeedback(s.db.QueryRow(ctx, query, feedbackID, restaurantID), &f)
	if err == nil {
		return &f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	existing, err := s.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	switch {
	case existing.RestaurantID != restaurantID:
		return nil, ErrForbidden
	case existing.CouponValidated:
		return nil, ErrCouponValidated
	default:
		return nil, ErrCouponNotIssued
	}
}
