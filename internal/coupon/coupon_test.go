package coupon

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	code := Generate("MESA", now)

	pattern := regexp.MustCompile(`^MESA-\d{8}-[A-Z0-9]{6}$`)
	if !pattern.MatchString(code) {
		t.Fatalf("code %q does not match PREFIX-YYYYMMDD-XXXXXX", code)
	}

	if !strings.HasPrefix(code, "MESA-20250314-") {
		t.Errorf("code %q does not carry the issue date", code)
	}
}

func TestGenerateUsesGivenPrefix(t *testing.T) {
	code := Generate("MEUAPP", time.Now())
	if !strings.HasPrefix(code, "MEUAPP-") {
		t.Errorf("code %q does not start with the configured prefix", code)
	}
}

func TestGenerateVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[Generate("MESA", now)] = true
	}
	if len(seen) < 2 {
		t.Error("expected distinct random segments across generations")
	}
}
