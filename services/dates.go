package services

import "time"

// day normalizes a timestamp to its calendar day in UTC. The availability
// ledger and search ranges are compared at day granularity only.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// expandDateRange turns an inclusive [from, to] range into the explicit list
// of days it covers.
func expandDateRange(from, to time.Time) []time.Time {
	from, to = day(from), day(to)

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// overlapsAny reports whether any entry of the ledger falls on one of the
// requested days.
func overlapsAny(ledger []time.Time, requested []time.Time) bool {
	want := make(map[time.Time]struct{}, len(requested))
	for _, d := range requested {
		want[day(d)] = struct{}{}
	}
	for _, d := range ledger {
		if _, ok := want[day(d)]; ok {
			return true
		}
	}
	return false
}
