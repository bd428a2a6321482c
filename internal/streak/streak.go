package streak

import (
	"sort"
	"time"
)

const dayKey = "2006-01-02"

// Stats is the result of a streak calculation.
type Stats struct {
	Streak          int `json:"streak"`
	TotalActiveDays int `json:"totalActiveDays"`
}

// Calculate computes the unbroken run of distinct calendar days ending at
// today or yesterday, plus the total number of distinct active days.
//
// Timestamps are collapsed to UTC calendar dates, so two records on the same
// day count once no matter which collection they came from or what time of
// day they carry. The streak seeds at 1 when the most recent active day is
// today or yesterday (a run that ended yesterday still counts until today is
// over) and extends backwards while each earlier day is exactly one calendar
// day before the previous one. The first gap stops the scan; activity older
// than the gap contributes to TotalActiveDays only.
func Calculate(dates []time.Time, now time.Time) Stats {
	unique := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		unique[d.UTC().Format(dayKey)] = struct{}{}
	}

	if len(unique) == 0 {
		return Stats{}
	}

	days := make([]string, 0, len(unique))
	for k := range unique {
		days = append(days, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	stats := Stats{TotalActiveDays: len(days)}

	today := now.UTC().Format(dayKey)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayKey)
	if days[0] != today && days[0] != yesterday {
		return stats
	}

	stats.Streak = 1
	current, _ := time.Parse(dayKey, days[0])
	for _, k := range days[1:] {
		day, _ := time.Parse(dayKey, k)
		// Calendar-date adjacency, not elapsed-hours math: the previous
		// active day must be exactly one day earlier.
		if !day.Equal(current.AddDate(0, 0, -1)) {
			break
		}
		stats.Streak++
		current = day
	}

	return stats
}
