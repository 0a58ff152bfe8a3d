package coupon

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generate builds a single-use discount code in the form PREFIX-YYYYMMDD-XXXXXX.
// The random segment is the first 6 hex chars of a v4 UUID, uppercased.
// Uniqueness is probabilistic; at this volume collisions are an accepted risk.
func Generate(prefix string, now time.Time) string {
	datePart := now.Format("20060102")
	randPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return prefix + "-" + datePart + "-" + randPart
}
