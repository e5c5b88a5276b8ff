package cashcut

import "time"

// Period is the half-open interval (Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return t.After(p.Start) && !t.After(p.End)
}

// NextPeriod starts where the latest cut ended, or at local midnight when
// there is none yet.
func NextPeriod(latestEnd *time.Time, now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	if latestEnd != nil {
		start := *latestEnd
		if start.After(now) {
			start = now
		}
		return Period{Start: start, End: now}
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Period{Start: midnight, End: now}
}
