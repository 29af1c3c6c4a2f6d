package domain

import "time"

const dayLayout = "2006-01-02"

// Stats are the dashboard aggregate cards.
type Stats struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

// ComputeStats counts every submission and those created on the same calendar
// day as now, with both instants rendered in loc.
func ComputeStats(submissions []Submission, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(dayLayout)
	stats := Stats{Total: len(submissions)}
	for _, s := range submissions {
		if s.CreatedAt.In(loc).Format(dayLayout) == today {
			stats.Today++
		}
	}
	return stats
}
