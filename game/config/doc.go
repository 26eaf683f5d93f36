// Package config provides ruleset management for the blockfall game.
//
// The config package handles:
//   - Loading rulesets from JSON or YAML files
//   - Ruleset validation through the engine
//   - Default ruleset management
//   - Ruleset discovery and listing
//
// Ruleset Format:
//
// Rulesets are stored in a directory, one file per ruleset, named
// <id>.json, <id>.yaml or <id>.yml. Each file defines the board size, the
// line score table, the lines needed per level and the gravity curve:
//
//	name: classic
//	width: 10
//	height: 20
//	line_scores: [0, 100, 300, 500, 800]
//	lines_per_level: 10
//	base_gravity_ms: 1000
//	gravity_step_ms: 50
//	min_gravity_ms: 50
//
// The built-in classic ruleset is always available, even when the directory
// is missing or holds no classic file.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadRuleset("sprint")
//	if errors.Is(err, config.ErrRulesetNotFound) {
//		rules = manager.GetDefault()
//	}
//
//	infos, err := manager.ListRulesets()
package config
