package budget

import "time"

// DayPoint is one day of the weekly series.
type DayPoint struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
	IsToday      bool   `json:"is_today"`
}

// WeeklySeries returns the trailing 7 calendar days ending today, oldest
// first. Days with no record report zero minutes; days with several records
// report their sum. The window is date-based rather than positional, so a
// day the child skipped still shows as an empty column.
func WeeklySeries(records []Record, today time.Time) []DayPoint {
	totals := totalsByDate(records)
	points := make([]DayPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(DateFormat)
		points = append(points, DayPoint{
			Date:         date,
			TotalMinutes: totals[date],
			IsToday:      i == 0,
		})
	}
	return points
}

// WeekSum is the total for one calendar week inside a month.
type WeekSum struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	TotalMinutes int    `json:"total_minutes"`
}

// MonthlyWeeks partitions the given month into Sunday-terminated weeks and
// sums recorded minutes per week. Partial weeks at the month edges still
// produce a bucket, clipped to the month.
func MonthlyWeeks(records []Record, year int, month time.Month) []WeekSum {
	totals := totalsByDate(records)

	var weeks []WeekSum
	open := false
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := d.Format(DateFormat)
		if !open {
			weeks = append(weeks, WeekSum{Start: date})
			open = true
		}
		w := &weeks[len(weeks)-1]
		w.End = date
		w.TotalMinutes += totals[date]
		if d.Weekday() == time.Sunday {
			open = false
		}
	}
	return weeks
}

// LevelDistribution counts records per level key. Every configured level
// appears in the result, so an empty history yields all-zero counts rather
// than a missing entry.
func LevelDistribution(records []Record, levels []LevelRule) map[LevelKey]int {
	dist := make(map[LevelKey]int, len(levels))
	for _, r := range levels {
		dist[r.Key] = 0
	}
	for _, rec := range records {
		dist[rec.Level]++
	}
	return dist
}

// MaxOrFloor returns the maximum of the values, but never less than floor.
// Chart scaling divides by this, so an empty or all-zero series must still
// produce a positive scale.
func MaxOrFloor(values []int, floor int) int {
	if floor < 1 {
		floor = 1
	}
	max := floor
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

func totalsByDate(records []Record) map[string]int {
	totals := make(map[string]int, len(records))
	for _, r := range records {
		totals[r.Date] += r.TotalMinutes
	}
	return totals
}
