package feedback

import (
	"testing"
	"time"

	"mesa/internal/store"
)

func TestBuildDashboardEmptySet(t *testing.T) {
	d := BuildDashboard(nil, time.Now())

	if d.Metrics.TotalFeedbacks != 0 {
		t.Errorf("total = %d, want 0", d.Metrics.TotalFeedbacks)
	}
	if d.Metrics.PositivesPercent != 0 || d.Metrics.NegativesPercent != 0 {
		t.Errorf("percentages must be 0 on an empty set, got %v / %v",
			d.Metrics.PositivesPercent, d.Metrics.NegativesPercent)
	}
	if len(d.Timeline.Feedbacks) != 7 || len(d.Timeline.Coupons) != 7 {
		t.Errorf("timeline must have 7 points even with no data, got %d / %d",
			len(d.Timeline.Feedbacks), len(d.Timeline.Coupons))
	}
}

func TestBuildDashboardPercentagesSumTo100(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	code := "MESA-20250610-AAAAAA"
	set := []store.Feedback{
		{ID: 1, Rating: 5, CreatedAt: now},
		{ID: 2, Rating: 4, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: 3, Rating: 2, NegativeComment: strPtr("comida fria"), CouponCode: &code, CreatedAt: now.AddDate(0, 0, -1)},
	}

	d := BuildDashboard(set, now)

	sum := d.Metrics.PositivesPercent + d.Metrics.NegativesPercent
	if sum != 100 {
		t.Errorf("percent sum = %v, want 100", sum)
	}
	if d.Metrics.NewCustomersToday != 1 {
		t.Errorf("new customers today = %d, want 1", d.Metrics.NewCustomersToday)
	}
	if d.Coupons.Requested != 1 {
		t.Errorf("coupons requested = %d, want 1", d.Coupons.Requested)
	}
	if d.Coupons.Validated != 0 {
		t.Errorf("coupons validated = %d, want 0", d.Coupons.Validated)
	}
	if d.Sentiments.PositivesPercent != d.Metrics.PositivesPercent {
		t.Error("sentiments must mirror general metrics")
	}
}

func TestTopComplaintsGroupsByExactText(t *testing.T) {
	set := []store.Feedback{
		{ID: 1, Rating: 2, NegativeComment: strPtr("comida fria")},
		{ID: 2, Rating: 1, NegativeComment: strPtr("comida fria")},
		{ID: 3, Rating: 3, NegativeComment: strPtr("demora no atendimento")},
		{ID: 4, Rating: 2, NegativeComment: strPtr("Comida fria")}, // different literal string
		{ID: 5, Rating: 2, NegativeComment: strPtr("   ")},         // blank, excluded
		{ID: 6, Rating: 5},                                         // no comment
	}

	groups := TopComplaints(set)

	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[0].Comment != "comida fria" || groups[0].Count != 2 {
		t.Errorf("top group = %+v, want comida fria x2", groups[0])
	}
	for i := 1; i < len(groups); i++ {
		if groups[i-1].Count < groups[i].Count {
			t.Fatalf("groups not sorted by descending count at %d", i)
		}
	}
}

func TestBuildTimelineSevenDaysOldestFirst(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	code := "MESA-20250607-BBBBBB"
	set := []store.Feedback{
		{ID: 1, Rating: 2, CouponCode: &code, CreatedAt: now.AddDate(0, 0, -3)},
	}

	tl := BuildTimeline(set, now)

	if len(tl.Feedbacks) != 7 {
		t.Fatalf("timeline length = %d, want 7", len(tl.Feedbacks))
	}
	if tl.Feedbacks[0].Day != "2025-06-04" || tl.Feedbacks[6].Day != "2025-06-10" {
		t.Errorf("timeline bounds = %s .. %s, want 2025-06-04 .. 2025-06-10",
			tl.Feedbacks[0].Day, tl.Feedbacks[6].Day)
	}

	for i, p := range tl.Feedbacks {
		want := 0
		if p.Day == "2025-06-07" { // 3 days ago
			want = 1
		}
		if p.Count != want {
			t.Errorf("day %s: count = %d, want %d", p.Day, p.Count, want)
		}
		if tl.Coupons[i].Count != want {
			t.Errorf("day %s: coupon count = %d, want %d", p.Day, tl.Coupons[i].Count, want)
		}
	}
}

func TestComplaintHours(t *testing.T) {
	set := []store.Feedback{
		{ID: 1, Rating: 2, NegativeComment: strPtr("a"), CreatedAt: day(1, 20)},
		{ID: 2, Rating: 1, NegativeComment: strPtr("b"), CreatedAt: day(2, 20)},
		{ID: 3, Rating: 3, NegativeComment: strPtr("c"), CreatedAt: day(3, 12)},
		{ID: 4, Rating: 5, CreatedAt: day(3, 9)}, // no complaint, no bucket
	}

	buckets := ComplaintHours(set)

	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2 (sparse output)", len(buckets))
	}
	if buckets[0].HourStart != 20 || buckets[0].HourEnd != 21 || buckets[0].Total != 2 {
		t.Errorf("top bucket = %+v, want 20-21 x2", buckets[0])
	}
	if buckets[1].HourStart != 12 || buckets[1].Total != 1 {
		t.Errorf("second bucket = %+v, want 12-13 x1", buckets[1])
	}
}

func TestComplaintHoursEmpty(t *testing.T) {
	if got := ComplaintHours(nil); len(got) != 0 {
		t.Errorf("expected no buckets, got %d", len(got))
	}
}
