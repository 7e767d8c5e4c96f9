package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

type itemKind int

const (
	kindGoal itemKind = iota
	kindHabit
)

// boardItem is one row of the today list: a goal due today or a habit
// scheduled today.
type boardItem struct {
	kind   itemKind
	id     string
	title  string
	status string
	closed bool
}

func (i boardItem) Title() string {
	icon := ui.IconGoal
	if i.kind == kindHabit {
		icon = ui.IconHabit
	}
	return icon + " " + i.title
}

func (i boardItem) Description() string { return i.status }
func (i boardItem) FilterValue() string { return i.title }

type keyMap struct {
	done    key.Binding
	fail    key.Binding
	refresh key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		done:    key.NewBinding(key.WithKeys("d", " "), key.WithHelp("d", "done")),
		fail:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fail")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

// boardModel renders only its own fields. Engine state is read and written
// from Update alone, which bubbletea runs on the program goroutine.
type boardModel struct {
	ctx  context.Context
	sess *engine.Session
	keys keyMap

	list     list.Model
	width    int
	header   string
	warnings []string
	lastLog  string
}

type outcome struct {
	item boardItem
	ok   bool
	res  *engine.OutcomeResult
	err  error
}

func newBoardModel(ctx context.Context, sess *engine.Session) boardModel {
	keys := newKeyMap()
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Today"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// d and f belong to the board, not to paging.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l/pgdn", "next page"))
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.done, keys.fail, keys.refresh}
	}

	m := boardModel{ctx: ctx, sess: sess, keys: keys, list: l, lastLog: "Loaded."}
	m.reload()
	return m
}

// reload copies everything View shows out of the session.
func (m *boardModel) reload() {
	m.list.SetItems(m.items())
	m.header = m.renderHeader()
	m.warnings = append([]string(nil), m.sess.Warnings()...)
}

func (m boardModel) Init() tea.Cmd { return nil }

// items lists today's goals first (by due time), then today's habits.
func (m boardModel) items() []list.Item {
	e := m.sess.Engine()
	today := e.Today()
	var out []list.Item
	for _, g := range e.GoalsDueOn(today) {
		status := "active · " + string(g.Size) + " · " + engine.DaysLeftText(g, e.Now())
		switch {
		case g.Done:
			status = "done"
		case g.Failed:
			status = "failed"
		}
		out = append(out, boardItem{kind: kindGoal, id: g.ID, title: g.Title, status: status, closed: g.Closed()})
	}
	for _, h := range e.HabitsOn(today) {
		status := "open · " + string(h.Stat)
		switch h.MarkOn(today) {
		case engine.MarkDone:
			status = "done today"
		case engine.MarkFailed:
			status = "failed today"
		}
		out = append(out, boardItem{kind: kindHabit, id: h.ID, title: h.Title, status: status})
	}
	return out
}

func (m boardModel) apply(it boardItem, ok bool) outcome {
	var res *engine.OutcomeResult
	err := m.sess.Mutate(m.ctx, func(e *engine.Engine) error {
		var err error
		switch {
		case it.kind == kindHabit && ok:
			res, err = e.MarkHabitDone(it.id, e.Today())
		case it.kind == kindHabit:
			res, err = e.MarkHabitFailed(it.id, e.Today())
		case ok:
			res, err = e.CompleteGoal(it.id)
		default:
			res, err = e.FailGoal(it.id)
		}
		return err
	})
	return outcome{item: it, ok: ok, res: res, err: err}
}

func outcomeLog(o outcome) string {
	if o.err != nil {
		return "Failed: " + o.err.Error()
	}
	verb := "Done"
	if !o.ok {
		verb = "Failed"
	}
	line := fmt.Sprintf("%s %s: %+d XP", verb, o.item.title, o.res.XPDelta)
	if o.res.LevelUp {
		line += fmt.Sprintf(" (level %d → %d)", o.res.LevelBefore, o.res.LevelAfter)
	}
	if o.res.Advanced {
		line += ", next due " + engine.FormatDate(o.res.NextDue)
	}
	return line
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, max(msg.Height-6, 5))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.refresh):
			m.reload()
			m.lastLog = "Refreshed."
			return m, nil
		case key.Matches(msg, m.keys.done), key.Matches(msg, m.keys.fail):
			it, ok := m.list.SelectedItem().(boardItem)
			if !ok {
				return m, nil
			}
			if it.closed {
				m.lastLog = "Already closed."
				return m, nil
			}
			// The engine is only touched on the program goroutine.
			m.lastLog = outcomeLog(m.apply(it, key.Matches(msg, m.keys.done)))
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	return m.header + "\n\n" + m.list.View() + "\n" + ui.Muted.Render(m.lastLog) + m.renderWarnings()
}

func (m boardModel) renderHeader() string {
	st := m.sess.Engine().State()
	lines := []string{
		fmt.Sprintf("%s  Level %d  %s", ui.Title.Render("Lifequest"), st.Level, ui.LevelBar(st.XP, 30)),
	}
	var stats []string
	for _, s := range engine.AllStats {
		stats = append(stats, fmt.Sprintf("%s %.2f", ui.StatLabel(s), st.Stats[s]))
	}
	lines = append(lines, ui.Muted.Render(strings.Join(stats, "  ")))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderWarnings() string {
	if len(m.warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range m.warnings {
		b.WriteString("\n" + ui.Warning(w))
	}
	return b.String()
}
