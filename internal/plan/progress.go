package plan

import (
	"math"
	"sort"
)

// progressPercent computes the derived progress value: the rounded percentage
// of completed months, 0 when there are no months at all.
func progressPercent(months, completed int) int {
	if months == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(months)))
}

// Recompute refreshes ProgressPercent from the current month state. Every
// mutation path must call this before persisting.
func Recompute(p *Plan) {
	p.ProgressPercent = progressPercent(len(p.Months), len(p.CompletedMonths))
}

func checkMonthBounds(p *Plan, m int) error {
	if m < 1 {
		return validationf("month must be a positive integer, got %d", m)
	}
	if len(p.Months) == 0 {
		return validationf("plan has no months")
	}
	if max := p.MaxMonth(); m > max {
		return validationf("month %d is out of range (plan ends at month %d)", m, max)
	}
	return nil
}

// MarkMonth records month m as completed. Marking an already-completed month
// is a no-op, so concurrent marks converge to the same state.
func MarkMonth(p *Plan, m int) error {
	if err := checkMonthBounds(p, m); err != nil {
		return err
	}
	i := sort.SearchInts(p.CompletedMonths, m)
	if i < len(p.CompletedMonths) && p.CompletedMonths[i] == m {
		return nil
	}
	p.CompletedMonths = append(p.CompletedMonths, 0)
	copy(p.CompletedMonths[i+1:], p.CompletedMonths[i:])
	p.CompletedMonths[i] = m
	Recompute(p)
	return nil
}

// UnmarkMonth removes month m from the completed set. Unmarking a month that
// was never completed is a no-op.
func UnmarkMonth(p *Plan, m int) error {
	if err := checkMonthBounds(p, m); err != nil {
		return err
	}
	i := sort.SearchInts(p.CompletedMonths, m)
	if i >= len(p.CompletedMonths) || p.CompletedMonths[i] != m {
		return nil
	}
	p.CompletedMonths = append(p.CompletedMonths[:i], p.CompletedMonths[i+1:]...)
	Recompute(p)
	return nil
}
