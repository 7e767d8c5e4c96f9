package engine

import "time"

type Stat string

const (
	StatHealth        Stat = "health"
	StatIntellect     Stat = "intellect"
	StatJoy           Stat = "joy"
	StatRelationships Stat = "relationships"
	StatSuccess       Stat = "success"
	StatDiscipline    Stat = "discipline"
)

// AllStats lists the six stats in display order.
var AllStats = []Stat{StatHealth, StatIntellect, StatJoy, StatRelationships, StatSuccess, StatDiscipline}

func (s Stat) IsValid() bool {
	switch s {
	case StatHealth, StatIntellect, StatJoy, StatRelationships, StatSuccess, StatDiscipline:
		return true
	default:
		return false
	}
}

// DefaultStat is used for goals whose stat is missing in a stored snapshot.
const DefaultStat Stat = StatSuccess

type SizeClass string

const (
	SizeShort SizeClass = "short"
	SizeMid   SizeClass = "mid"
	SizeLong  SizeClass = "long"
)

func (c SizeClass) IsValid() bool {
	switch c {
	case SizeShort, SizeMid, SizeLong:
		return true
	default:
		return false
	}
}

type RecurrenceKind string

const (
	RepeatNone     RecurrenceKind = "none"
	RepeatDaily    RecurrenceKind = "daily"
	RepeatWeekly   RecurrenceKind = "weekly"
	RepeatWeekdays RecurrenceKind = "weekdays"
)

// Recurrence is a goal's repeat policy. Weekdays use 0 = Monday .. 6 = Sunday
// and only matter for RepeatWeekdays.
type Recurrence struct {
	Kind     RecurrenceKind
	Weekdays []int
}

func (r Recurrence) IsRecurring() bool {
	return r.Kind != "" && r.Kind != RepeatNone
}

type Goal struct {
	ID         string
	Title      string
	Due        time.Time
	DueTime    string
	Size       SizeClass
	Category   string
	Stat       Stat
	Recurrence Recurrence
	Done       bool
	Failed     bool
	Overdue    bool
}

// Closed reports whether a goal reached a terminal state.
func (g *Goal) Closed() bool { return g.Done || g.Failed }

type Habit struct {
	ID          string
	Title       string
	Weekdays    []int
	Stat        Stat
	Completions DateSet
	Failures    DateSet
	CreatedOn   time.Time
}

type BigGoal struct {
	ID     string
	Title  string
	Due    time.Time
	Note   string
	Done   bool
	Failed bool
}

func (b *BigGoal) Closed() bool { return b.Done || b.Failed }

// State is everything the engine owns for one user. It is the unit that is
// loaded, mutated and saved as a whole.
type State struct {
	XP                int
	Level             int
	Stats             map[Stat]float64
	XPLog             map[string]int
	DisciplineAwarded DateSet
	LastResetYear     *int

	Goals    []Goal
	Habits   []Habit
	BigGoals []BigGoal

	PendingLevelUp    int
	PendingReportYear int
}

// NewState returns the empty defaults a first-time user (or a rolled-over
// year) starts from.
func NewState() *State {
	st := &State{
		Level:             1,
		Stats:             map[Stat]float64{},
		XPLog:             map[string]int{},
		DisciplineAwarded: DateSet{},
	}
	for _, s := range AllStats {
		st.Stats[s] = 0
	}
	return st
}

// Clone returns a deep copy. Snapshots handed to exporters are clones, so the
// live state can be reset without touching them.
func (st *State) Clone() *State {
	out := *st
	out.Stats = make(map[Stat]float64, len(st.Stats))
	for k, v := range st.Stats {
		out.Stats[k] = v
	}
	out.XPLog = make(map[string]int, len(st.XPLog))
	for k, v := range st.XPLog {
		out.XPLog[k] = v
	}
	out.DisciplineAwarded = st.DisciplineAwarded.Clone()
	if st.LastResetYear != nil {
		y := *st.LastResetYear
		out.LastResetYear = &y
	}
	out.Goals = make([]Goal, len(st.Goals))
	for i, g := range st.Goals {
		g.Recurrence.Weekdays = append([]int(nil), g.Recurrence.Weekdays...)
		out.Goals[i] = g
	}
	out.Habits = make([]Habit, len(st.Habits))
	for i, h := range st.Habits {
		h.Weekdays = append([]int(nil), h.Weekdays...)
		h.Completions = h.Completions.Clone()
		h.Failures = h.Failures.Clone()
		out.Habits[i] = h
	}
	out.BigGoals = append([]BigGoal(nil), st.BigGoals...)
	return &out
}
