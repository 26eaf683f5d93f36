package validate

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wricardo/blockfall/game/engine"
)

// LevelRow describes one level of a ruleset's progression
type LevelRow struct {
	Level      int
	StartLines int
	GravityMs  int
	// Best single clear at this level: the last score table entry times the level
	BestClear int
}

// FloorLevel returns the first level whose gravity equals the ruleset's floor
func FloorLevel(rules *engine.Ruleset) int {
	if rules.GravityStepMs <= 0 {
		if rules.BaseGravityMs <= rules.MinGravityMs {
			return 1
		}
		return 0
	}
	steps := (rules.BaseGravityMs - rules.MinGravityMs + rules.GravityStepMs - 1) / rules.GravityStepMs
	return steps + 1
}

// Progression lists levels 1..maxLevel with the lines needed to reach each one
func Progression(rules *engine.Ruleset, maxLevel int) []LevelRow {
	if maxLevel < 0 {
		maxLevel = 0
	}
	rows := make([]LevelRow, 0, maxLevel)
	best := rules.LineScore(len(rules.LineScores) - 1)
	for level := 1; level <= maxLevel; level++ {
		rows = append(rows, LevelRow{
			Level:      level,
			StartLines: (level - 1) * rules.LinesPerLevel,
			GravityMs:  rules.GravityForLevel(level),
			BestClear:  best * level,
		})
	}
	return rows
}

// WriteProgression prints a progression table up to the gravity floor (capped at maxLevel)
func WriteProgression(w io.Writer, rules *engine.Ruleset, maxLevel int) {
	if maxLevel < 0 {
		maxLevel = 0
	}
	levels := FloorLevel(rules)
	if levels <= 0 || levels > maxLevel {
		levels = maxLevel
	}

	fmt.Fprintf(w, "%s (%dx%d): %s\n", rules.Name, rules.Width, rules.Height, rules.Description)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "level\tlines\tgravity\tbest clear\t")
	for _, row := range Progression(rules, levels) {
		fmt.Fprintf(tw, "%d\t%d\t%dms\t%d\t\n", row.Level, row.StartLines, row.GravityMs, row.BestClear)
	}
	tw.Flush()
}
