package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mesa/internal/feedback"
)

const (
	defaultSize = 20
	maxSize     = 100
)

// ListQuery is the parsed query string of the admin list endpoints.
// Page is 0-based to match the pagination contract.
type ListQuery struct {
	Page    int
	Size    int
	Filters feedback.Filters
}

// ParseListQuery parses ?page=&size= plus the optional filters. Malformed
// numbers fall back to defaults; malformed dates are a caller error.
func ParseListQuery(q url.Values) (ListQuery, error) {
	lq := ListQuery{
		Page: 0,
		Size: defaultSize,
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 0 {
			lq.Page = page
		}
	}

	if sizeStr := strings.TrimSpace(q.Get("size")); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			switch {
			case size <= 0:
				lq.Size = defaultSize
			case size > maxSize:
				lq.Size = maxSize
			default:
				lq.Size = size
			}
		}
	}

	lq.Filters.Tipo = strings.TrimSpace(q.Get("tipo"))
	lq.Filters.Name = strings.TrimSpace(q.Get("nome"))
	lq.Filters.Email = strings.TrimSpace(q.Get("email"))
	lq.Filters.Coupon = strings.TrimSpace(q.Get("cupom"))

	if validatedStr := strings.TrimSpace(q.Get("validado")); validatedStr != "" {
		validated, err := strconv.ParseBool(validatedStr)
		if err != nil {
			return lq, fmt.Errorf("invalid validado value %q", validatedStr)
		}
		lq.Filters.Validated = &validated
	}

	var err error
	if lq.Filters.DateFrom, err = parseDate(q.Get("dataInicio")); err != nil {
		return lq, err
	}
	if lq.Filters.DateTo, err = parseDate(q.Get("dataFim")); err != nil {
		return lq, err
	}

	return lq, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
