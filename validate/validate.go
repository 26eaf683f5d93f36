// Package validate checks ruleset files and reports on them. It backs the
// "rulesets validate" command and the analyze tool. It checks:
//   - File format (JSON, or YAML for .yaml/.yml) and decodability
//   - Engine validation: board bounds, score table shape, gravity curve
//   - That every piece can spawn on the configured board
//   - That the ruleset name matches its file name (warning only)
package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/blockfall/game/engine"
)

// Result captures the outcome of validating a single file. Messages holds
// informational lines ("✓ ..."), warnings ("⚠ ...") and, when Valid is
// false, the errors that were found.
type Result struct {
	File     string
	Valid    bool
	Messages []string
	Ruleset  *engine.Ruleset
}

// File loads and validates a single ruleset file
func File(path string) Result {
	result := Result{
		File:     filepath.Base(path),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	rules, err := engine.DecodeRuleset(path, data)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, fmt.Sprintf("Failed to parse: %v", err))
		return result
	}
	result.Ruleset = rules

	if err := engine.ValidateRuleset(rules); err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, strings.TrimPrefix(err.Error(), "ruleset validation: "))
		return result
	}

	stem := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if rules.Name != stem {
		result.Messages = append(result.Messages, fmt.Sprintf("⚠ Name %q differs from file name %q; sessions use the file name", rules.Name, stem))
	}

	result.Messages = append(result.Messages,
		fmt.Sprintf("✓ Board: %dx%d", rules.Width, rules.Height),
		fmt.Sprintf("✓ Score table: %v (clears beyond %d lines score %d)", rules.LineScores, len(rules.LineScores)-1, rules.LineScores[len(rules.LineScores)-1]),
		fmt.Sprintf("✓ Gravity: %dms at level 1, floor %dms reached at level %d", rules.GravityForLevel(1), rules.MinGravityMs, FloorLevel(rules)),
	)
	return result
}

// Dir validates every ruleset file in dir, sorted by file name
func Dir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, File(filepath.Join(dir, name)))
	}
	return results, nil
}

// WriteReport prints a concise report and returns whether every result is valid
func WriteReport(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Fprintln(w, "  ❌ "+msg)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if len(results) == 0 {
		fmt.Fprintln(w, "No ruleset files found")
	} else if allValid {
		fmt.Fprintln(w, "✅ All rulesets are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some rulesets have errors")
	}
	return allValid
}
