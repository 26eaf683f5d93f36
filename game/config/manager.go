package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
)

var (
	ErrRulesetNotFound = errors.New("ruleset not found")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
)

// DefaultRulesetName is the file stem preferred as the default ruleset
const DefaultRulesetName = "classic"

// rulesetExtensions lists the accepted file extensions in lookup order
var rulesetExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles ruleset loading and caching
type Manager struct {
	rulesetDir     string
	defaultRuleset *engine.Ruleset
	rulesets       map[string]*engine.Ruleset
	mu             sync.RWMutex
}

// NewManager creates a new ruleset manager. A missing directory is tolerated:
// the manager then serves only the built-in classic ruleset.
func NewManager(rulesetDir string) (*Manager, error) {
	if info, err := os.Stat(rulesetDir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("ruleset path is not a directory: %s", rulesetDir)
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat ruleset directory: %w", err)
	} else if os.IsNotExist(err) {
		log.Printf("Ruleset directory %s not found, using built-in rulesets", rulesetDir)
	}

	m := &Manager{
		rulesetDir: rulesetDir,
		rulesets:   make(map[string]*engine.Ruleset),
	}

	m.defaultRuleset = m.loadDefaultRuleset()
	return m, nil
}

// LoadRuleset loads a ruleset by name. The name is a file stem in the ruleset
// directory, optionally with its extension. The built-in classic ruleset answers
// to "classic" when no such file exists.
func (m *Manager) LoadRuleset(name string) (*engine.Ruleset, error) {
	key := rulesetKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, fmt.Errorf("%w: %q", ErrRulesetNotFound, name)
	}

	m.mu.RLock()
	if rules, exists := m.rulesets[key]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if rules, exists := m.rulesets[key]; exists {
		return rules, nil
	}

	rules, err := m.readRuleset(name)
	if errors.Is(err, ErrRulesetNotFound) && key == DefaultRulesetName {
		rules, err = engine.DefaultRuleset(), nil
	}
	if err != nil {
		return nil, err
	}

	m.rulesets[key] = rules
	return rules, nil
}

// ListRulesets returns information about all loadable rulesets, sorted by ID.
// Invalid files are skipped. The built-in classic ruleset is always listed.
func (m *Manager) ListRulesets() ([]*service.RulesetInfo, error) {
	var rulesets []*service.RulesetInfo
	seen := make(map[string]bool)

	entries, err := os.ReadDir(m.rulesetDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read ruleset directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !hasRulesetExtension(entry.Name()) {
			continue
		}

		id := rulesetKey(entry.Name())
		if seen[id] {
			continue
		}

		rules, err := m.LoadRuleset(id)
		if err != nil {
			log.Printf("Skipping ruleset %s: %v", entry.Name(), err)
			continue
		}

		seen[id] = true
		rulesets = append(rulesets, rulesetInfo(entry.Name(), id, rules))
	}

	if !seen[DefaultRulesetName] {
		rulesets = append(rulesets, rulesetInfo("", DefaultRulesetName, engine.DefaultRuleset()))
	}

	sort.Slice(rulesets, func(i, j int) bool {
		return rulesets[i].RulesetID < rulesets[j].RulesetID
	})
	return rulesets, nil
}

// GetDefault returns the default ruleset
func (m *Manager) GetDefault() *engine.Ruleset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultRuleset
}

// SetDefault sets the default ruleset by name
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadRuleset(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRuleset = rules
	return nil
}

// SaveRuleset validates a ruleset and writes it as <name>.json
func (m *Manager) SaveRuleset(name string, rules *engine.Ruleset) error {
	if err := engine.ValidateRuleset(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}

	key := rulesetKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid ruleset name %q", name)
	}

	if err := os.MkdirAll(m.rulesetDir, 0755); err != nil {
		return fmt.Errorf("failed to create ruleset directory: %w", err)
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ruleset: %w", err)
	}

	path := filepath.Join(m.rulesetDir, key+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ruleset file: %w", err)
	}

	m.mu.Lock()
	m.rulesets[key] = rules
	m.mu.Unlock()

	return nil
}

// readRuleset finds, parses and validates a ruleset file. Callers hold m.mu.
func (m *Manager) readRuleset(name string) (*engine.Ruleset, error) {
	candidates := []string{name}
	if !hasRulesetExtension(name) {
		candidates = candidates[:0]
		for _, ext := range rulesetExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.rulesetDir, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read ruleset file: %w", err)
		}

		rules, err := engine.DecodeRuleset(filename, data)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidRuleset, filename, err)
		}
		if err := engine.ValidateRuleset(rules); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRuleset, filename, err)
		}
		return rules, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrRulesetNotFound, name)
}

// loadDefaultRuleset prefers a classic ruleset file and falls back to the built-in one
func (m *Manager) loadDefaultRuleset() *engine.Ruleset {
	rules, err := m.LoadRuleset(DefaultRulesetName)
	if err == nil {
		return rules
	}
	log.Printf("Warning: default ruleset unavailable (%v), using built-in classic", err)
	return engine.DefaultRuleset()
}

func rulesetKey(name string) string {
	base := strings.TrimSpace(name)
	for _, ext := range rulesetExtensions {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

func hasRulesetExtension(name string) bool {
	return rulesetKey(name) != strings.TrimSpace(name)
}

func rulesetInfo(filename, id string, rules *engine.Ruleset) *service.RulesetInfo {
	return &service.RulesetInfo{
		Filename:    filename,
		RulesetID:   id,
		Name:        rules.Name,
		Description: rules.Description,
		Width:       rules.Width,
		Height:      rules.Height,
	}
}
