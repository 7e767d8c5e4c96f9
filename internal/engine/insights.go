package engine

import (
	"math"
	"slices"
	"time"
)

type GoalCounts struct {
	Total   int
	Active  int
	Done    int
	Failed  int
	Overdue int
	BySize  map[SizeClass]int
	ByCat   map[string]int
}

type CategorySuccess struct {
	Category string
	Done     int
	Failed   int
	Rate     float64
}

type HabitSuccess struct {
	ID     string
	Title  string
	Done   int
	Failed int
	Rate   float64
}

type DayXP struct {
	Date time.Time
	XP   int
}

type BigGoalCounts struct {
	Total   int
	Active  int
	Done    int
	Failed  int
	PastDue int
}

// Insights is the read-only progress summary behind `lq stats`.
type Insights struct {
	Goals           GoalCounts
	Categories      []CategorySuccess
	Habits          []HabitSuccess
	HabitsByWeekday [7]float64
	LastWeek        []DayXP
	Average30       float64
	Top3            []DayXP
	BigGoals        BigGoalCounts
	CurrentStreak   int
	BestStreak      int
}

func (e *Engine) Insights() Insights {
	return Insights{
		Goals:           e.goalCounts(),
		Categories:      e.categorySuccess(),
		Habits:          e.habitSuccess(),
		HabitsByWeekday: e.habitWeekdayRates(),
		LastWeek:        e.XPLastDays(7),
		Average30:       e.averageXP(30),
		Top3:            e.topXPDays(30, 3),
		BigGoals:        e.bigGoalCounts(),
		CurrentStreak:   e.CurrentStreak(),
		BestStreak:      e.BestStreak(),
	}
}

func (e *Engine) goalCounts() GoalCounts {
	c := GoalCounts{
		BySize: map[SizeClass]int{SizeShort: 0, SizeMid: 0, SizeLong: 0},
		ByCat:  map[string]int{},
	}
	for _, g := range e.st.Goals {
		c.Total++
		c.BySize[g.Size]++
		c.ByCat[g.Category]++
		switch {
		case g.Done:
			c.Done++
		case g.Failed:
			c.Failed++
			if g.Overdue {
				c.Overdue++
			}
		default:
			c.Active++
		}
	}
	return c
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// categorySuccess is sorted by success rate, best first.
func (e *Engine) categorySuccess() []CategorySuccess {
	idx := map[string]int{}
	var out []CategorySuccess
	for _, g := range e.st.Goals {
		if !g.Closed() {
			continue
		}
		i, ok := idx[g.Category]
		if !ok {
			i = len(out)
			idx[g.Category] = i
			out = append(out, CategorySuccess{Category: g.Category})
		}
		if g.Done {
			out[i].Done++
		} else {
			out[i].Failed++
		}
	}
	for i := range out {
		out[i].Rate = percent(out[i].Done, out[i].Done+out[i].Failed)
	}
	slices.SortStableFunc(out, func(a, b CategorySuccess) int {
		switch {
		case a.Rate > b.Rate:
			return -1
		case a.Rate < b.Rate:
			return 1
		}
		if a.Category < b.Category {
			return -1
		}
		if a.Category > b.Category {
			return 1
		}
		return 0
	})
	return out
}

func (e *Engine) habitSuccess() []HabitSuccess {
	out := make([]HabitSuccess, 0, len(e.st.Habits))
	for _, h := range e.st.Habits {
		d, f := len(h.Completions), len(h.Failures)
		out = append(out, HabitSuccess{ID: h.ID, Title: h.Title, Done: d, Failed: f, Rate: percent(d, d+f)})
	}
	return out
}

// habitWeekdayRates is the completion rate per weekday across all habits.
func (e *Engine) habitWeekdayRates() [7]float64 {
	var done, failed [7]int
	count := func(set DateSet, into *[7]int) {
		for s := range set {
			if d, err := ParseDate(s); err == nil {
				into[Weekday(d)]++
			}
		}
	}
	for _, h := range e.st.Habits {
		count(h.Completions, &done)
		count(h.Failures, &failed)
	}
	var out [7]float64
	for i := range out {
		out[i] = percent(done[i], done[i]+failed[i])
	}
	return out
}

// XPLastDays returns the XP delta for each of the last n days, oldest first,
// today included.
func (e *Engine) XPLastDays(n int) []DayXP {
	today := e.Today()
	out := make([]DayXP, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		out = append(out, DayXP{Date: d, XP: e.st.XPLog[FormatDate(d)]})
	}
	return out
}

func (e *Engine) averageXP(n int) float64 {
	if n <= 0 {
		return 0
	}
	sum := 0
	for _, d := range e.XPLastDays(n) {
		sum += d.XP
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

func (e *Engine) topXPDays(n, k int) []DayXP {
	days := e.XPLastDays(n)
	slices.SortStableFunc(days, func(a, b DayXP) int { return b.XP - a.XP })
	if len(days) > k {
		days = days[:k]
	}
	return days
}

func (e *Engine) bigGoalCounts() BigGoalCounts {
	var c BigGoalCounts
	today := e.Today()
	for _, b := range e.st.BigGoals {
		c.Total++
		switch {
		case b.Done:
			c.Done++
		case b.Failed:
			c.Failed++
		default:
			c.Active++
			if b.Due.Before(today) {
				c.PastDue++
			}
		}
	}
	return c
}
