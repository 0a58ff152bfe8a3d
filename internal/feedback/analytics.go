package feedback

import (
	"sort"
	"strings"
	"time"

	"mesa/internal/store"
)

type GeneralMetrics struct {
	TotalFeedbacks    int     `json:"total_feedbacks"`
	PositivesPercent  float64 `json:"positives_percent"`
	NegativesPercent  float64 `json:"negatives_percent"`
	NewCustomersToday int     `json:"new_customers_today"`
}

type CouponCounters struct {
	Requested int `json:"requested"`
	Validated int `json:"validated"`
}

type Sentiments struct {
	PositivesPercent float64 `json:"positives_percent"`
	NegativesPercent float64 `json:"negatives_percent"`
}

type ComplaintGroup struct {
	Comment string `json:"comment"`
	Count   int    `json:"count"`
}

type TimelinePoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Timeline struct {
	Feedbacks []TimelinePoint `json:"feedbacks"`
	Coupons   []TimelinePoint `json:"coupons"`
}

type Dashboard struct {
	Metrics       GeneralMetrics   `json:"metrics"`
	Coupons       CouponCounters   `json:"coupons"`
	Sentiments    Sentiments       `json:"sentiments"`
	TopComplaints []ComplaintGroup `json:"top_complaints"`
	Timeline      Timeline         `json:"timeline"`
}

type HourBucket struct {
	HourStart int `json:"hour_start"`
	HourEnd   int `json:"hour_end"`
	Total     int `json:"total"`
}

func hasComplaint(f store.Feedback) bool {
	return f.NegativeComment != nil && strings.TrimSpace(*f.NegativeComment) != ""
}

// BuildDashboard derives the full read-only snapshot from a tenant-scoped set.
// now anchors "today" and the 7-day timeline.
func BuildDashboard(feedbacks []store.Feedback, now time.Time) Dashboard {
	total := len(feedbacks)

	var positives, negatives, today, requested, validated int
	for _, f := range feedbacks {
		if IsPositive(f.Rating) {
			positives++
		} else {
			negatives++
		}
		if dateKey(f.CreatedAt) == dateKey(now) {
			today++
		}
		if f.CouponCode != nil {
			requested++
		}
		if f.CouponValidated {
			validated++
		}
	}

	metrics := GeneralMetrics{
		TotalFeedbacks:    total,
		NewCustomersToday: today,
	}
	if total > 0 {
		metrics.PositivesPercent = float64(positives) * 100.0 / float64(total)
		metrics.NegativesPercent = float64(negatives) * 100.0 / float64(total)
	}

	return Dashboard{
		Metrics: metrics,
		Coupons: CouponCounters{
			Requested: requested,
			Validated: validated,
		},
		Sentiments: Sentiments{
			PositivesPercent: metrics.PositivesPercent,
			NegativesPercent: metrics.NegativesPercent,
		},
		TopComplaints: TopComplaints(feedbacks),
		Timeline:      BuildTimeline(feedbacks, now),
	}
}

// TopComplaints groups complaints by the literal comment text, count
// descending. Blank comments are excluded. Grouping is by exact string, not
// semantic similarity.
func TopComplaints(feedbacks []store.Feedback) []ComplaintGroup {
	counts := make(map[string]int)
	for _, f := range feedbacks {
		if hasComplaint(f) {
			counts[*f.NegativeComment]++
		}
	}

	groups := make([]ComplaintGroup, 0, len(counts))
	for comment, count := range counts {
		groups = append(groups, ComplaintGroup{Comment: comment, Count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Comment < groups[j].Comment
	})

	return groups
}

// BuildTimeline produces today and the 6 preceding calendar days, oldest
// first. Days without activity still appear with a zero count.
func BuildTimeline(feedbacks []store.Feedback, now time.Time) Timeline {
	timeline := Timeline{
		Feedbacks: make([]TimelinePoint, 0, 7),
		Coupons:   make([]TimelinePoint, 0, 7),
	}

	for i := 6; i >= 0; i-- {
		day := dateKey(now.AddDate(0, 0, -i))

		var countFeedback, countCoupon int
		for _, f := range feedbacks {
			if dateKey(f.CreatedAt) != day {
				continue
			}
			countFeedback++
			if f.CouponCode != nil {
				countCoupon++
			}
		}

		timeline.Feedbacks = append(timeline.Feedbacks, TimelinePoint{Day: day, Count: countFeedback})
		timeline.Coupons = append(timeline.Coupons, TimelinePoint{Day: day, Count: countCoupon})
	}

	return timeline
}

// ComplaintHours buckets complaint-bearing feedback by the hour of day it was
// created, count descending. Hours with no complaints are omitted.
func ComplaintHours(feedbacks []store.Feedback) []HourBucket {
	counts := make(map[int]int)
	for _, f := range feedbacks {
		if hasComplaint(f) {
			counts[f.CreatedAt.Hour()]++
		}
	}

	buckets := make([]HourBucket, 0, len(counts))
	for hour, count := range counts {
		buckets = append(buckets, HourBucket{HourStart: hour, HourEnd: hour + 1, Total: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Total != buckets[j].Total {
			return buckets[i].Total > buckets[j].Total
		}
		return buckets[i].HourStart < buckets[j].HourStart
	})

	return buckets
}
