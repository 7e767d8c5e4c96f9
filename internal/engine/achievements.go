package engine

// Milestone is a badge derived from the current state.
type Milestone struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// Milestones calculates which badges the current state has earned. Nothing
// is stored: a rollover resets progress, so badges restart with the year.
func (e *Engine) Milestones() []Milestone {
	best := e.BestStreak()
	bigDone := 0
	goalsDone := 0
	for _, b := range e.st.BigGoals {
		if b.Done {
			bigDone++
		}
	}
	for _, g := range e.st.Goals {
		if g.Done {
			goalsDone++
		}
	}
	habitDone := 0
	for _, h := range e.st.Habits {
		habitDone += len(h.Completions)
	}

	lvl := e.st.Level
	return []Milestone{
		// Level milestones
		milestone("getting_started", "Getting Started", "Reach level 2", "🌿", lvl >= 2),
		milestone("on_the_path", "On the Path", "Reach level 5", "🌳", lvl >= 5),
		milestone("seasoned", "Seasoned", "Reach level 10", "⭐", lvl >= 10),

		// Streaks
		milestone("three_in_a_row", "Three in a Row", "3 perfect days in a row", "🔥", best >= 3),
		milestone("full_week", "Full Week", "7 perfect days in a row", "📅", best >= 7),
		milestone("iron_month", "Iron Month", "30 perfect days in a row", "🛡️", best >= 30),

		// Goals and habits
		milestone("first_goal", "First Goal", "Complete a goal", "✓", goalsDone >= 1),
		milestone("productive", "Productive", "Complete 25 goals", "📋", goalsDone >= 25),
		milestone("habit_former", "Habit Former", "Log 30 habit completions", "🔁", habitDone >= 30),

		milestone("big_win", "Big Win", "Complete a big goal", "🏆", bigDone >= 1),
	}
}

func milestone(id, name, desc, icon string, earned bool) Milestone {
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// CountEarned returns how many of ms have been earned.
func CountEarned(ms []Milestone) int {
	n := 0
	for _, m := range ms {
		if m.Earned {
			n++
		}
	}
	return n
}
