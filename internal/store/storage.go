package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("resource belongs to another restaurant")
	ErrConflict        = errors.New("resource already exists")
	ErrCouponValidated = errors.New("coupon already validated")
	ErrCouponNotIssued = errors.New("coupon has not been issued")

	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Feedbacks interface {
		Create(context.Context, *Feedback) error
		GetByID(context.Context, int64) (*Feedback, error)
		ListByRestaurant(context.Context, int64) ([]Feedback, error)
		AttachCoupon(ctx context.Context, feedbackID int64, code string) error
		ValidateCoupon(ctx context.Context, feedbackID, restaurantID int64) (*Feedback, error)
	}
	Restaurants interface {
		Create(context.Context, *Restaurant) error
		GetByID(context.Context, int64) (*Restaurant, error)
	}
	Admins interface {
		Create(context.Context, *Admin) error
		GetByID(context.Context, int64) (*Admin, error)
		GetByEmail(context.Context, string) (*Admin, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Feedbacks:   &FeedbackStore{db},
		Restaurants: &RestaurantStore{db},
		Admins:      &AdminStore{db},
	}
}
