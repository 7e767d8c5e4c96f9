package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SnapshotSchema is written into every encoded snapshot. Documents without
// a schema field are the older untyped shape and are defaulted on load.
const SnapshotSchema = 1

type snapshotDoc struct {
	Schema            int                `json:"schema"`
	XP                int                `json:"xp"`
	Level             int                `json:"level"`
	Stats             map[string]float64 `json:"stats"`
	XPLog             json.RawMessage    `json:"xp_log,omitempty"`
	DisciplineAwarded []string           `json:"discipline_awarded_dates"`
	LastResetYear     *int               `json:"last_reset_year,omitempty"`
	Goals             []goalDoc          `json:"goals"`
	Habits            []habitDoc         `json:"habits"`
	BigGoals          []bigGoalDoc       `json:"big_goals"`
	PendingLevelUp    int                `json:"levelup_to,omitempty"`
	PendingReportYear int                `json:"report_year_pending,omitempty"`
}

type goalDoc struct {
	ID        string  `json:"id,omitempty"`
	Title     string  `json:"title"`
	Due       string  `json:"due"`
	Time      *string `json:"time"`
	Type      string  `json:"type"`
	Category  string  `json:"category"`
	Done      bool    `json:"done"`
	Failed    bool    `json:"failed"`
	Overdue   bool    `json:"overdue"`
	Stat      string  `json:"stat"`
	RecurMode string  `json:"recur_mode"`
	RecurDays []int   `json:"recur_days"`
}

type habitDoc struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Days        []int    `json:"days"`
	Stat        string   `json:"stat"`
	Completions []string `json:"completions"`
	Failures    []string `json:"failures"`
	CreatedOn   string   `json:"created_on,omitempty"`
}

type bigGoalDoc struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Due    string `json:"due"`
	Done   bool   `json:"done"`
	Failed bool   `json:"failed"`
	Note   string `json:"note"`
}

// EncodeSnapshot serializes st into the flat JSON document the store keeps.
func EncodeSnapshot(st *State) ([]byte, error) {
	log, err := json.Marshal(st.XPLog)
	if err != nil {
		return nil, fmt.Errorf("encode xp log: %w", err)
	}
	doc := snapshotDoc{
		Schema:            SnapshotSchema,
		XP:                st.XP,
		Level:             st.Level,
		Stats:             make(map[string]float64, len(st.Stats)),
		XPLog:             log,
		DisciplineAwarded: st.DisciplineAwarded.Sorted(),
		LastResetYear:     st.LastResetYear,
		Goals:             make([]goalDoc, 0, len(st.Goals)),
		Habits:            make([]habitDoc, 0, len(st.Habits)),
		BigGoals:          make([]bigGoalDoc, 0, len(st.BigGoals)),
		PendingLevelUp:    st.PendingLevelUp,
		PendingReportYear: st.PendingReportYear,
	}
	for k, v := range st.Stats {
		doc.Stats[string(k)] = v
	}
	for _, g := range st.Goals {
		gd := goalDoc{
			ID:        g.ID,
			Title:     g.Title,
			Due:       FormatDate(g.Due),
			Type:      string(g.Size),
			Category:  g.Category,
			Done:      g.Done,
			Failed:    g.Failed,
			Overdue:   g.Overdue,
			Stat:      string(g.Stat),
			RecurMode: string(g.Recurrence.Kind),
			RecurDays: g.Recurrence.Weekdays,
		}
		if g.DueTime != "" {
			t := g.DueTime
			gd.Time = &t
		}
		if gd.RecurDays == nil {
			gd.RecurDays = []int{}
		}
		doc.Goals = append(doc.Goals, gd)
	}
	for _, h := range st.Habits {
		hd := habitDoc{
			ID:          h.ID,
			Title:       h.Title,
			Days:        h.Weekdays,
			Stat:        string(h.Stat),
			Completions: h.Completions.Sorted(),
			Failures:    h.Failures.Sorted(),
		}
		if !h.CreatedOn.IsZero() {
			hd.CreatedOn = FormatDate(h.CreatedOn)
		}
		doc.Habits = append(doc.Habits, hd)
	}
	for _, b := range st.BigGoals {
		doc.BigGoals = append(doc.BigGoals, bigGoalDoc{
			ID:     b.ID,
			Title:  b.Title,
			Due:    FormatDate(b.Due),
			Done:   b.Done,
			Failed: b.Failed,
			Note:   b.Note,
		})
	}
	return json.Marshal(doc)
}

// DecodeSnapshot rebuilds a State from a stored document. Missing optional
// fields take their defaults, older names for stats, sizes and categories
// are translated, and entries that cannot be repaired (an unparsable due
// date, say) are dropped and reported in the returned warnings. Only a
// document that is not JSON at all is an error.
func DecodeSnapshot(data []byte, today time.Time) (*State, []string, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	d := decoder{today: Date(today)}
	st := d.state(&doc)
	return st, d.warnings, nil
}

type decoder struct {
	today    time.Time
	warnings []string
}

func (d *decoder) warnf(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *decoder) state(doc *snapshotDoc) *State {
	st := NewState()
	st.XP = doc.XP
	st.Level = LevelForXP(doc.XP)
	st.LastResetYear = doc.LastResetYear
	st.PendingLevelUp = doc.PendingLevelUp
	st.PendingReportYear = doc.PendingReportYear

	for k, v := range doc.Stats {
		s, ok := statFromStored(k)
		if !ok {
			d.warnf("dropped unknown stat %q", k)
			continue
		}
		st.Stats[s] = max(0, round2(v))
	}
	st.XPLog = d.xpLog(doc.XPLog)
	st.DisciplineAwarded = d.dates("discipline dates", doc.DisciplineAwarded)

	for _, gd := range doc.Goals {
		if g, ok := d.goal(gd); ok {
			st.Goals = append(st.Goals, g)
		}
	}
	for _, hd := range doc.Habits {
		if h, ok := d.habit(hd); ok {
			st.Habits = append(st.Habits, h)
		}
	}
	for _, bd := range doc.BigGoals {
		if b, ok := d.bigGoal(bd); ok {
			st.BigGoals = append(st.BigGoals, b)
		}
	}
	return st
}

// xpLog accepts either a date->delta object or a list of [date, delta] pairs.
// A date repeated in the pair form keeps its last value.
func (d *decoder) xpLog(raw json.RawMessage) map[string]int {
	out := map[string]int{}
	if len(raw) == 0 || string(raw) == "null" {
		return out
	}
	var asMap map[string]float64
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for k, v := range asMap {
			out[k] = int(v)
		}
		return out
	}
	var pairs [][]any
	if err := json.Unmarshal(raw, &pairs); err != nil {
		d.warnf("xp log unreadable, starting empty")
		return out
	}
	for _, p := range pairs {
		if len(p) != 2 {
			continue
		}
		k, ok1 := p[0].(string)
		v, ok2 := p[1].(float64)
		if !ok1 || !ok2 {
			continue
		}
		out[k] = int(v)
	}
	return out
}

func (d *decoder) dates(what string, in []string) DateSet {
	out := DateSet{}
	for _, s := range in {
		t, err := ParseDate(s)
		if err != nil {
			d.warnf("%s: dropped %q", what, s)
			continue
		}
		out.Add(t)
	}
	return out
}

// weekdays keeps the in-range days, sorted and without repeats.
func (d *decoder) weekdays(what string, in []int) []int {
	valid := make([]int, 0, len(in))
	for _, wd := range in {
		if wd < 0 || wd > 6 {
			d.warnf("%s: dropped weekday %d", what, wd)
			continue
		}
		valid = append(valid, wd)
	}
	out, _ := validateWeekdays("days", valid)
	return out
}

func (d *decoder) id(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}

func (d *decoder) goal(gd goalDoc) (Goal, bool) {
	due, err := ParseDate(gd.Due)
	if err != nil {
		d.warnf("goal %q: %v, dropped", gd.Title, err)
		return Goal{}, false
	}
	g := Goal{
		ID:       d.id(gd.ID),
		Title:    gd.Title,
		Due:      due,
		Category: categoryFromStored(gd.Category),
		Done:     gd.Done,
		Failed:   gd.Failed && !gd.Done,
		Overdue:  gd.Overdue,
	}
	if gd.Time != nil {
		if _, _, err := ParseClock(*gd.Time); err == nil {
			g.DueTime = strings.TrimSpace(*gd.Time)
		}
	}
	if s, ok := statFromStored(gd.Stat); ok {
		g.Stat = s
	} else {
		g.Stat = DefaultStat
	}
	if c, ok := sizeFromStored(gd.Type); ok {
		g.Size = c
	} else {
		g.Size = Classify(due, d.today)
	}

	switch strings.ToLower(gd.RecurMode) {
	case "daily":
		g.Recurrence = Recurrence{Kind: RepeatDaily}
	case "weekly":
		g.Recurrence = Recurrence{Kind: RepeatWeekly}
	case "weekdays", "by_days":
		days := d.weekdays(fmt.Sprintf("goal %q recur_days", gd.Title), gd.RecurDays)
		g.Recurrence = Recurrence{Kind: RepeatWeekdays, Weekdays: days}
	default:
		g.Recurrence = Recurrence{Kind: RepeatNone}
	}
	if g.Recurrence.IsRecurring() {
		g.Done, g.Failed = false, false
	}
	return g, true
}

func (d *decoder) habit(hd habitDoc) (Habit, bool) {
	days := d.weekdays(fmt.Sprintf("habit %q days", hd.Title), hd.Days)
	h := Habit{
		ID:          d.id(hd.ID),
		Title:       hd.Title,
		Weekdays:    days,
		Completions: d.dates("habit completions", hd.Completions),
		Failures:    d.dates("habit failures", hd.Failures),
	}
	if s, ok := statFromStored(hd.Stat); ok {
		h.Stat = s
	} else {
		h.Stat = StatDiscipline
	}
	// a date on both sides keeps the completion
	for k := range h.Completions {
		delete(h.Failures, k)
	}
	if t, err := ParseDate(hd.CreatedOn); err == nil {
		h.CreatedOn = t
	}
	return h, true
}

func (d *decoder) bigGoal(bd bigGoalDoc) (BigGoal, bool) {
	due, err := ParseDate(bd.Due)
	if err != nil {
		d.warnf("big goal %q: %v, dropped", bd.Title, err)
		return BigGoal{}, false
	}
	return BigGoal{
		ID:     d.id(bd.ID),
		Title:  bd.Title,
		Due:    due,
		Note:   bd.Note,
		Done:   bd.Done,
		Failed: bd.Failed && !bd.Done,
	}, true
}

var legacyStats = map[string]Stat{
	"Здоровье ❤️":  StatHealth,
	"Интеллект 🧠":  StatIntellect,
	"Радость 🙂":    StatJoy,
	"Отношения 🤝":  StatRelationships,
	"Успех ⭐":      StatSuccess,
	"Дисциплина 🎯": StatDiscipline,
}

var legacySizes = map[string]SizeClass{
	"Краткосрочная": SizeShort,
	"Среднесрочная": SizeMid,
	"Долгосрочная":  SizeLong,
}

var legacyCategories = map[string]string{
	"Работа":  "work",
	"Личное":  "personal",
	"Семья":   "family",
	"Прочее":  "other",
	"Проекты": "projects",
}

func statFromStored(s string) (Stat, bool) {
	if st := Stat(strings.ToLower(strings.TrimSpace(s))); st.IsValid() {
		return st, true
	}
	st, ok := legacyStats[strings.TrimSpace(s)]
	return st, ok
}

func sizeFromStored(s string) (SizeClass, bool) {
	if c := SizeClass(strings.ToLower(strings.TrimSpace(s))); c.IsValid() {
		return c, true
	}
	c, ok := legacySizes[strings.TrimSpace(s)]
	return c, ok
}

func categoryFromStored(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory
	}
	if c, ok := legacyCategories[s]; ok {
		return c
	}
	return s
}
