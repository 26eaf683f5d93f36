package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRuleset returns the classic ruleset: a 10x20 board, 100/300/500/800 line scores,
// a level every 10 lines and gravity falling from 1000ms by 50ms per level to a 50ms floor.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Name:          "classic",
		Description:   "Classic 10x20 board with the standard line table",
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		LineScores:    append([]int(nil), DefaultLineScores...),
		LinesPerLevel: DefaultLinesPerLevel,
		BaseGravityMs: DefaultBaseGravityMs,
		GravityStepMs: DefaultGravityStepMs,
		MinGravityMs:  DefaultMinGravityMs,
	}
}

// ValidateRuleset validates a ruleset for correctness and playability
func ValidateRuleset(rules *Ruleset) error {
	if rules == nil {
		return fmt.Errorf("ruleset validation: ruleset is nil")
	}
	if rules.Name == "" {
		return fmt.Errorf("ruleset validation: name is required")
	}

	if rules.Width < MinBoardWidth || rules.Width > MaxBoardWidth {
		return fmt.Errorf("ruleset validation: width must be between %d and %d, got %d", MinBoardWidth, MaxBoardWidth, rules.Width)
	}
	if rules.Height < MinBoardHeight || rules.Height > MaxBoardHeight {
		return fmt.Errorf("ruleset validation: height must be between %d and %d, got %d", MinBoardHeight, MaxBoardHeight, rules.Height)
	}

	if len(rules.LineScores) < 2 {
		return fmt.Errorf("ruleset validation: line_scores needs at least 2 entries, got %d", len(rules.LineScores))
	}
	if rules.LineScores[0] != 0 {
		return fmt.Errorf("ruleset validation: line_scores[0] must be 0, got %d", rules.LineScores[0])
	}
	for i := 1; i < len(rules.LineScores); i++ {
		if rules.LineScores[i] < rules.LineScores[i-1] {
			return fmt.Errorf("ruleset validation: line_scores must be non-decreasing, entry %d (%d) < entry %d (%d)",
				i, rules.LineScores[i], i-1, rules.LineScores[i-1])
		}
	}

	if rules.LinesPerLevel < 1 {
		return fmt.Errorf("ruleset validation: lines_per_level must be at least 1, got %d", rules.LinesPerLevel)
	}
	if rules.MinGravityMs < 1 {
		return fmt.Errorf("ruleset validation: min_gravity_ms must be at least 1, got %d", rules.MinGravityMs)
	}
	if rules.BaseGravityMs < rules.MinGravityMs {
		return fmt.Errorf("ruleset validation: base_gravity_ms (%d) must not be below min_gravity_ms (%d)",
			rules.BaseGravityMs, rules.MinGravityMs)
	}
	if rules.GravityStepMs < 0 {
		return fmt.Errorf("ruleset validation: gravity_step_ms must not be negative, got %d", rules.GravityStepMs)
	}

	// Every kind must be able to spawn on an empty board
	empty := NewBoard(rules.Width, rules.Height)
	for _, k := range Kinds() {
		p := NewPiece(k, rules.Width)
		if !IsValidPlacement(empty, p.Pos.X, p.Pos.Y, p.Grid()) {
			return fmt.Errorf("ruleset validation: piece %s cannot spawn on a %dx%d board", k, rules.Width, rules.Height)
		}
	}

	return nil
}

// DecodeRuleset parses ruleset data. Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func DecodeRuleset(filename string, data []byte) (*Ruleset, error) {
	var rules Ruleset
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, err
		}
	}
	return &rules, nil
}

// LoadRuleset loads and validates a ruleset file
func LoadRuleset(filename string) (*Ruleset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	rules, err := DecodeRuleset(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ruleset file '%s': %v", filename, err)
	}

	if err := ValidateRuleset(rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// InitGameState creates the not-started state for a ruleset: an empty board with no pieces.
func InitGameState(rules *Ruleset) *GameState {
	if rules == nil {
		rules = DefaultRuleset()
	}

	state := &GameState{
		Board:       NewBoard(rules.Width, rules.Height),
		RulesetName: rules.Name,
		Message:     "Press start",
	}
	state.RecomputeProgression(rules)
	return state
}
