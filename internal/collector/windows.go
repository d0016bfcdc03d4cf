package collector

import "time"

// windowDays is the maximum length of one collection window.
const windowDays = 7

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	First int
	Last  int
}

// Years lists every year in the range in increasing order.
func (r YearRange) Years() []int {
	if r.Last < r.First {
		return nil
	}

	years := make([]int, 0, r.Last-r.First+1)
	for y := r.First; y <= r.Last; y++ {
		years = append(years, y)
	}

	return years
}

// Span is the inclusive day range covered by one window.
type Span struct {
	Start time.Time
	End   time.Time
}

// DaysInMonth returns the length of month in year. February has 29 days
// in every year divisible by four; there is no centurial correction.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if year%4 == 0 {
			return 29
		}

		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// MonthWindows splits a month into week-long spans starting on day 1.
// The last span is clipped to the month length, and a span that would
// start and end on the same day is not emitted.
func MonthWindows(year int, month time.Month) []Span {
	length := DaysInMonth(year, month)

	var spans []Span

	for day := 1; day <= length; day += windowDays {
		end := min(day+windowDays-1, length)
		if day == end {
			break
		}

		spans = append(spans, Span{
			Start: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, end, 0, 0, 0, 0, time.UTC),
		})
	}

	return spans
}

// PlanWindows returns every span of every month in years, chronologically.
func PlanWindows(years YearRange) []Span {
	var spans []Span

	for _, y := range years.Years() {
		for m := time.January; m <= time.December; m++ {
			spans = append(spans, MonthWindows(y, m)...)
		}
	}

	return spans
}
