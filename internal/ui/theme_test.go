package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lifequest/internal/engine"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		value, total, width int
		want                string
	}{
		{0, 1000, 10, "[----------]"},
		{500, 1000, 10, "[#####-----]"},
		{1000, 1000, 10, "[##########]"},
		{2000, 1000, 10, "[##########]"},
		{-5, 1000, 4, "[----]"},
		{1, 0, 3, "[###]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.value, tt.total, tt.width))
	}
}

func TestLevelBarUsesXPIntoLevel(t *testing.T) {
	assert.True(t, strings.HasPrefix(LevelBar(1250, 4), "[#---]"))
	assert.Contains(t, LevelBar(1250, 4), "250/1000")
}

func TestStatLabel(t *testing.T) {
	assert.Equal(t, "❤️ health", StatLabel(engine.StatHealth))
	assert.Equal(t, "mystery", StatLabel(engine.Stat("mystery")))
}

func TestNumberAndXPDelta(t *testing.T) {
	assert.Equal(t, "12,500", Number(12500))
	assert.Equal(t, "-1,000", Number(-1000))
	assert.Equal(t, "+250 XP", XPDelta(250))
	assert.Equal(t, "-1,250 XP", XPDelta(-1250))
	assert.Equal(t, "±0 XP", XPDelta(0))
}
