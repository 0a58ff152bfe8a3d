package params

import (
	"net/url"
	"testing"
)

func TestParseListQueryDefaults(t *testing.T) {
	lq, err := ParseListQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lq.Page != 0 {
		t.Errorf("page = %d, want 0", lq.Page)
	}
	if lq.Size != 20 {
		t.Errorf("size = %d, want 20", lq.Size)
	}
	if lq.Filters.Validated != nil {
		t.Error("validated filter must default to absent")
	}
	if lq.Filters.DateFrom != nil || lq.Filters.DateTo != nil {
		t.Error("date filters must default to absent")
	}
}

func TestParseListQueryValues(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("size", "10")
	q.Set("tipo", "NEGATIVO")
	q.Set("validado", "true")
	q.Set("nome", "ana")
	q.Set("email", "@example.com")
	q.Set("cupom", "MESA-")
	q.Set("dataInicio", "2025-06-01")
	q.Set("dataFim", "2025-06-10")

	lq, err := ParseListQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lq.Page != 2 || lq.Size != 10 {
		t.Errorf("page/size = %d/%d, want 2/10", lq.Page, lq.Size)
	}
	if lq.Filters.Tipo != "NEGATIVO" {
		t.Errorf("tipo = %q", lq.Filters.Tipo)
	}
	if lq.Filters.Validated == nil || !*lq.Filters.Validated {
		t.Error("validated filter not parsed")
	}
	if lq.Filters.Name != "ana" || lq.Filters.Email != "@example.com" || lq.Filters.Coupon != "MESA-" {
		t.Errorf("substring filters not parsed: %+v", lq.Filters)
	}
	if lq.Filters.DateFrom == nil || lq.Filters.DateFrom.Format("2006-01-02") != "2025-06-01" {
		t.Error("dataInicio not parsed")
	}
	if lq.Filters.DateTo == nil || lq.Filters.DateTo.Format("2006-01-02") != "2025-06-10" {
		t.Error("dataFim not parsed")
	}
}

func TestParseListQueryClamping(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantPage int
		wantSize int
	}{
		{"negative page falls back", "page", "-1", 0, 20},
		{"garbage page falls back", "page", "abc", 0, 20},
		{"zero size falls back", "size", "0", 0, 20},
		{"oversized size clamps", "size", "500", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set(tt.key, tt.value)
			lq, err := ParseListQuery(q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lq.Page != tt.wantPage || lq.Size != tt.wantSize {
				t.Errorf("page/size = %d/%d, want %d/%d", lq.Page, lq.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestParseListQueryBadValues(t *testing.T) {
	for _, tt := range []struct{ key, value string }{
		{"validado", "maybe"},
		{"dataInicio", "01/06/2025"},
		{"dataFim", "notadate"},
	} {
		q := url.Values{}
		q.Set(tt.key, tt.value)
		if _, err := ParseListQuery(q); err == nil {
			t.Errorf("%s=%s: expected error", tt.key, tt.value)
		}
	}
}
