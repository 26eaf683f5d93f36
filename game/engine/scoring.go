package engine

// LineScore returns the base score for clearing n lines at once.
// Counts beyond the table clamp to its last entry; non-positive counts score nothing.
func (r *Ruleset) LineScore(n int) int {
	if n <= 0 || len(r.LineScores) == 0 {
		return 0
	}
	if n >= len(r.LineScores) {
		return r.LineScores[len(r.LineScores)-1]
	}
	return r.LineScores[n]
}

// LevelForLines derives the level from cumulative cleared lines.
func (r *Ruleset) LevelForLines(lines int) int {
	if lines < 0 {
		lines = 0
	}
	perLevel := r.LinesPerLevel
	if perLevel <= 0 {
		perLevel = DefaultLinesPerLevel
	}
	return lines/perLevel + 1
}

// GravityForLevel returns the gravity interval in milliseconds for a level.
func (r *Ruleset) GravityForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	interval := r.BaseGravityMs - (level-1)*r.GravityStepMs
	if interval < r.MinGravityMs {
		return r.MinGravityMs
	}
	return interval
}

// ApplyLineClear scores a clear of n lines at the current level, then recomputes
// level and gravity from the new line total. It returns the score added.
func (gs *GameState) ApplyLineClear(n int, rules *Ruleset) int {
	if n <= 0 {
		return 0
	}

	delta := rules.LineScore(n) * gs.Level
	gs.Score += delta
	gs.Lines += n
	gs.RecomputeProgression(rules)
	return delta
}

// RecomputeProgression derives level and gravity interval from cumulative lines.
func (gs *GameState) RecomputeProgression(rules *Ruleset) {
	gs.Level = rules.LevelForLines(gs.Lines)
	gs.GravityIntervalMs = rules.GravityForLevel(gs.Level)
}
