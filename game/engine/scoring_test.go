package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineScore(t *testing.T) {
	rules := DefaultRuleset()

	tests := []struct {
		lines    int
		expected int
	}{
		{-1, 0},
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
		{5, 800},
		{12, 800},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rules.LineScore(tt.lines), "lines=%d", tt.lines)
	}
}

func TestLevelForLines(t *testing.T) {
	rules := DefaultRuleset()

	assert.Equal(t, 1, rules.LevelForLines(0))
	assert.Equal(t, 1, rules.LevelForLines(9))
	assert.Equal(t, 2, rules.LevelForLines(10))
	assert.Equal(t, 3, rules.LevelForLines(25))
	assert.Equal(t, 1, rules.LevelForLines(-4))
}

func TestGravityForLevel(t *testing.T) {
	rules := DefaultRuleset()

	tests := []struct {
		level    int
		expected int
	}{
		{0, 1000},
		{1, 1000},
		{2, 950},
		{10, 550},
		{19, 100},
		{20, 50},
		{21, 50},
		{100, 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rules.GravityForLevel(tt.level), "level=%d", tt.level)
	}
}

func TestApplyLineClear(t *testing.T) {
	rules := DefaultRuleset()
	state := InitGameState(rules)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 1000, state.GravityIntervalMs)

	delta := state.ApplyLineClear(1, rules)
	assert.Equal(t, 100, delta)
	assert.Equal(t, 100, state.Score)
	assert.Equal(t, 1, state.Lines)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 1000, state.GravityIntervalMs)
}

func TestApplyLineClear_LevelUpUsesPreviousLevel(t *testing.T) {
	rules := DefaultRuleset()
	state := InitGameState(rules)
	state.Lines = 9

	assert.Equal(t, 100, state.ApplyLineClear(1, rules))
	assert.Equal(t, 10, state.Lines)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 950, state.GravityIntervalMs)

	assert.Equal(t, 1600, state.ApplyLineClear(4, rules))
	assert.Equal(t, 1700, state.Score)
	assert.Equal(t, 14, state.Lines)
}

func TestApplyLineClear_ZeroLinesIsNoop(t *testing.T) {
	rules := DefaultRuleset()
	state := InitGameState(rules)
	before := state.Clone()

	assert.Zero(t, state.ApplyLineClear(0, rules))
	assert.Equal(t, before, state)
}

func TestRecomputeProgression_FromRestoredTotals(t *testing.T) {
	rules := DefaultRuleset()
	state := InitGameState(rules)
	state.Lines = 57
	state.Level = 1
	state.GravityIntervalMs = 1000

	state.RecomputeProgression(rules)
	assert.Equal(t, 6, state.Level)
	assert.Equal(t, 750, state.GravityIntervalMs)
}
