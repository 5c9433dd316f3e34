package domain

import (
	"math"
	"time"
)

// Metric primitives: pure, deterministic computations over an in-memory
// ticket set the caller has already filtered. Empty or non-qualifying input
// yields a zero-valued result, never an error or NaN.

// Performance score weighting between resolution rate and normalized
// response time. Both terms are on a 0-100 scale; the weights keep the
// score monotone: more resolved tickets or faster responses never lower it.
const (
	resolutionRateWeight = 0.6
	responseTimeWeight   = 0.4
)

// AverageResponseTime returns the mean response time in whole minutes over
// tickets that have left the open state, measured from creation to last
// update. Tickets still open are excluded, not counted as zero. Returns 0
// when no ticket qualifies.
func AverageResponseTime(tickets []*Ticket) int64 {
	var total float64
	var count int64

	for _, t := range tickets {
		if t.Status == StatusOpen {
			continue
		}
		total += t.LastUpdated.Sub(t.CreatedAt).Minutes()
		count++
	}

	if count == 0 {
		return 0
	}
	return int64(math.Round(total / float64(count)))
}

// AverageResolutionTime returns the mean minutes from creation to
// resolution over resolved tickets. Returns 0 when none are resolved.
func AverageResolutionTime(tickets []*Ticket) int64 {
	var total float64
	var count int64

	for _, t := range tickets {
		if !t.IsResolved() {
			continue
		}
		total += t.ResolvedAt.Sub(t.CreatedAt).Minutes()
		count++
	}

	if count == 0 {
		return 0
	}
	return int64(math.Round(total / float64(count)))
}

// ResolutionRate returns the percentage of tickets that are resolved,
// 0 for an empty set.
func ResolutionRate(tickets []*Ticket) float64 {
	if len(tickets) == 0 {
		return 0
	}

	var resolved int
	for _, t := range tickets {
		if t.Status == StatusResolved {
			resolved++
		}
	}
	return float64(resolved) / float64(len(tickets)) * 100
}

// PerformanceScore blends resolution rate with response-time efficiency
// into a single 0-100 figure. The response term normalizes the average
// response time so that an instant response scores 100 and anything past
// the acceptable ceiling scores 0. The blend is a 60/40 weighted mean,
// non-decreasing in resolution rate and non-increasing in response time.
func PerformanceScore(tickets []*Ticket) int64 {
	if len(tickets) == 0 {
		return 0
	}

	resolutionRate := ResolutionRate(tickets)
	avgResponse := float64(AverageResponseTime(tickets))

	normalizedResponse := 100 - avgResponse/60
	normalizedResponse = math.Max(0, math.Min(100, normalizedResponse))

	score := resolutionRateWeight*resolutionRate + responseTimeWeight*normalizedResponse
	return int64(math.Round(score))
}

// PriorityBucket is one entry of a priority distribution.
type PriorityBucket struct {
	Priority   TicketPriority
	Count      int64
	Percentage int64
}

// PriorityDistribution counts tickets per priority level and derives rounded
// percentages. The result always contains all four levels in fixed order,
// zero-valued when the input is empty.
func PriorityDistribution(tickets []*Ticket) []PriorityBucket {
	counts := make(map[TicketPriority]int64, len(TicketPriorities))
	for _, t := range tickets {
		counts[t.Priority]++
	}

	total := int64(len(tickets))
	buckets := make([]PriorityBucket, 0, len(TicketPriorities))
	for _, priority := range TicketPriorities {
		count := counts[priority]
		var percentage int64
		if total > 0 {
			percentage = int64(math.Round(float64(count) / float64(total) * 100))
		}
		buckets = append(buckets, PriorityBucket{
			Priority:   priority,
			Count:      count,
			Percentage: percentage,
		})
	}
	return buckets
}

// CountResolvedOn counts tickets resolved on the given calendar day in the
// day's location. Drives the "resolved today" figure.
func CountResolvedOn(tickets []*Ticket, day time.Time) int64 {
	year, month, date := day.Date()

	var count int64
	for _, t := range tickets {
		if !t.IsResolved() {
			continue
		}
		ry, rm, rd := t.ResolvedAt.In(day.Location()).Date()
		if ry == year && rm == month && rd == date {
			count++
		}
	}
	return count
}
