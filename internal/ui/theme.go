package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lifequest/internal/engine"
)

// Lifequest theme (CLI + board).

const (
	IconGoal    = "🎯"
	IconHabit   = "🔁"
	IconBig     = "🏔️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconFailed  = "❌"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconFire    = "🔥"
	IconChart   = "📊"
	IconTrash   = "🗑️"
	IconClock   = "⏰"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

var statIcons = map[engine.Stat]string{
	engine.StatHealth:        "❤️",
	engine.StatIntellect:     "🧠",
	engine.StatJoy:           "😊",
	engine.StatRelationships: "🤝",
	engine.StatSuccess:       "🏆",
	engine.StatDiscipline:    "🧱",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatLabel renders a stat name with its icon, e.g. "❤️ health".
func StatLabel(s engine.Stat) string {
	if icon, ok := statIcons[s]; ok {
		return icon + " " + string(s)
	}
	return string(s)
}

// GoalStatus renders the lifecycle state of a goal.
func GoalStatus(g engine.Goal) string {
	switch {
	case g.Done:
		return Good.Render("done")
	case g.Failed:
		return Bad.Render("failed")
	case g.Overdue:
		return Warn.Render("overdue")
	default:
		return H2.Render("active")
	}
}

func BigGoalStatus(b engine.BigGoal) string {
	switch {
	case b.Done:
		return Good.Render("done")
	case b.Failed:
		return Bad.Render("failed")
	default:
		return H2.Render("active")
	}
}

// HabitMark renders a habit's state for one day.
func HabitMark(m engine.HabitMark) string {
	switch m {
	case engine.MarkDone:
		return Good.Render("done")
	case engine.MarkFailed:
		return Bad.Render("failed")
	default:
		return Muted.Render("open")
	}
}

// SizeLabel is the short size marker shown next to goal titles.
func SizeLabel(c engine.SizeClass) string {
	switch c {
	case engine.SizeLong:
		return Gold.Render("long")
	case engine.SizeMid:
		return H2.Render("mid")
	default:
		return Muted.Render("short")
	}
}

var numbers = message.NewPrinter(language.English)

// Number renders n with thousands separators, e.g. 12,500.
func Number(n int) string {
	return numbers.Sprintf("%d", n)
}

// XPDelta renders a signed XP change, green for gains.
func XPDelta(delta int) string {
	switch {
	case delta > 0:
		return Good.Render("+" + Number(delta) + " XP")
	case delta < 0:
		return Bad.Render(Number(delta) + " XP")
	default:
		return Muted.Render("±0 XP")
	}
}

// LevelBar renders progress through the current level.
func LevelBar(xp int, width int) string {
	into := engine.XPIntoLevel(xp)
	return ProgressBar(into, engine.XPPerLevel, width) + Muted.Render(fmt.Sprintf(" %d/%d", into, engine.XPPerLevel))
}

func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := min(value*width/total, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func Warning(msg string) string {
	return Warn.Render(IconWarn + " " + msg)
}
