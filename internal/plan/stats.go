package plan

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Stats aggregates activity across all of a user's plans.
type Stats struct {
	DaysActive       int     `json:"daysActive"`
	DaysActiveLast7  int     `json:"daysActiveLast7"`
	HoursThisWeek    float64 `json:"hoursThisWeek"`
	ConsistencyBadge string  `json:"consistencyBadge"`
}

// Activity is the per-plan input to ComputeStats: the plan's timestamps and
// its daily study-time string.
type Activity struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DailyTime string
}

var (
	hourPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*hour`)
	minutePattern  = regexp.MustCompile(`(\d+)\s*min`)
	leadingFloat   = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
	dayDuration    = 24 * time.Hour
	activityWindow = 30 // days
	weekWindow     = 6  // days ago, inclusive
)

// ParseDailyHours extracts an hours-per-day value from a free-form study-time
// string: "1.5 hours" -> 1.5, "30 min" -> 0.5, "2" -> 2, anything else -> 0.
func ParseDailyHours(s string) float64 {
	if s == "" {
		return 0
	}
	lower := strings.ToLower(s)
	if m := hourPattern.FindStringSubmatch(lower); m != nil {
		return parseFloat(m[1])
	}
	if m := minutePattern.FindStringSubmatch(lower); m != nil {
		return parseFloat(m[1]) / 60
	}
	if m := leadingFloat.FindStringSubmatch(lower); m != nil {
		return parseFloat(m[1])
	}
	return 0
}

// ComputeStats scans plan timestamps and derives activity statistics.
// Each plan's effective timestamp is its creation time, falling back to the
// last-update time, falling back to now. Day arithmetic is calendar-day
// granularity in UTC.
func ComputeStats(plans []Activity, now time.Time) Stats {
	days := map[string]struct{}{}
	days7 := map[string]struct{}{}
	hours := 0.0

	for _, a := range plans {
		ts := a.CreatedAt
		if ts.IsZero() {
			ts = a.UpdatedAt
		}
		if ts.IsZero() {
			ts = now
		}
		dayKey := ts.UTC().Format("2006-01-02")
		daysAgo := int(math.Floor(float64(now.Sub(ts)) / float64(dayDuration)))
		if daysAgo <= activityWindow {
			days[dayKey] = struct{}{}
		}
		if daysAgo <= weekWindow {
			days7[dayKey] = struct{}{}
			hours += ParseDailyHours(a.DailyTime)
		}
	}

	badge := "Bronze"
	switch {
	case len(days7) >= 5:
		badge = "Gold"
	case len(days7) >= 3:
		badge = "Silver"
	}

	return Stats{
		DaysActive:       len(days),
		DaysActiveLast7:  len(days7),
		HoursThisWeek:    math.Round(hours*100) / 100,
		ConsistencyBadge: badge,
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
