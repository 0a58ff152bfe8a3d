package feedback

import (
	"sort"
	"strings"
	"time"

	"mesa/internal/store"
)

const (
	TipoPositivo = "POSITIVO"
	TipoNegativo = "NEGATIVO"
)

// Filters is the optional conjunction applied to a tenant-scoped feedback set.
// Zero values are no-ops; an unrecognised Tipo matches everything, as the
// admin UI sends it straight through.
type Filters struct {
	Tipo      string
	Validated *bool
	Name      string
	Email     string
	Coupon    string
	DateFrom  *time.Time // inclusive, date component only
	DateTo    *time.Time // inclusive, date component only
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (fl Filters) matches(f store.Feedback) bool {
	switch strings.ToUpper(fl.Tipo) {
	case TipoPositivo:
		if !IsPositive(f.Rating) {
			return false
		}
	case TipoNegativo:
		if IsPositive(f.Rating) {
			return false
		}
	}

	if fl.Validated != nil && f.CouponValidated != *fl.Validated {
		return false
	}

	if fl.Name != "" && !containsFold(f.Name, fl.Name) {
		return false
	}

	if fl.Email != "" && !containsFold(f.Email, fl.Email) {
		return false
	}

	if fl.Coupon != "" {
		if f.CouponCode == nil || !containsFold(*f.CouponCode, fl.Coupon) {
			return false
		}
	}

	if fl.DateFrom != nil && dateKey(f.CreatedAt) < dateKey(*fl.DateFrom) {
		return false
	}

	if fl.DateTo != nil && dateKey(f.CreatedAt) > dateKey(*fl.DateTo) {
		return false
	}

	return true
}

// Apply filters the set and sorts it by id descending (most recent first).
func Apply(feedbacks []store.Feedback, fl Filters) []store.Feedback {
	filtered := make([]store.Feedback, 0, len(feedbacks))
	for _, f := range feedbacks {
		if fl.matches(f) {
			filtered = append(filtered, f)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ID > filtered[j].ID
	})

	return filtered
}

// Page slices the filtered set. page is 0-based; an out-of-range page yields
// an empty slice, never an error.
func Page(feedbacks []store.Feedback, page, size int) []store.Feedback {
	start := page * size
	if start >= len(feedbacks) {
		return []store.Feedback{}
	}

	end := start + size
	if end > len(feedbacks) {
		end = len(feedbacks)
	}
	return feedbacks[start:end]
}
