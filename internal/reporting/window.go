package reporting

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Window is a half-open reporting interval [Start, End) in local time.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today covers the current calendar day.
func Today(now time.Time) Window {
	start := startOfDay(now)
	return Window{Start: start, End: start.AddDate(0, 0, 1), Label: "Today"}
}

// TrailingDays covers the last n calendar days including today.
func TrailingDays(now time.Time, n int) Window {
	end := startOfDay(now).AddDate(0, 0, 1)
	return Window{
		Start: end.AddDate(0, 0, -n),
		End:   end,
		Label: fmt.Sprintf("Last %d days", n),
	}
}

// MonthToDate covers the first of the current month through today.
func MonthToDate(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: startOfDay(now).AddDate(0, 0, 1), Label: "This month"}
}

// CustomRange covers an explicit inclusive date range.
func CustomRange(start, end string, loc *time.Location) (Window, error) {
	startDay, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start date %q", start)
	}
	endDay, err := time.ParseInLocation(dateLayout, end, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end date %q", end)
	}
	if endDay.Before(startDay) {
		return Window{}, fmt.Errorf("end date %s before start date %s", end, start)
	}
	return Window{
		Start: startDay,
		End:   endDay.AddDate(0, 0, 1),
		Label: start + " to " + end,
	}, nil
}

// ResolveWindow picks the report window for the product-level stats: the
// custom range when both bounds are present and valid, month-to-date
// otherwise.
func ResolveWindow(start, end string, now time.Time) Window {
	if start != "" && end != "" {
		if w, err := CustomRange(start, end, now.Location()); err == nil {
			return w
		}
	}
	return MonthToDate(now)
}
