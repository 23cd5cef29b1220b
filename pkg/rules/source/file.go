package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"veridian-hq/verdict/pkg/rules"
)

// FileSource loads rule definitions from YAML files on disk. The path may be
// a single file or a directory; directories load every .yaml/.yml file in
// lexical order so rule order is stable across runs.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// ruleFile is the YAML document shape:
//
//	rules:
//	  - id: R-001
//	    description: amount must not be negative
//	    condition: amount < 0
type ruleFile struct {
	Rules []rules.Definition `yaml:"rules"`
}

// NewFileSource creates a file-based rule source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// LoadRules loads all definitions from the configured path.
func (s *FileSource) LoadRules(ctx context.Context) ([]rules.Definition, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat rule path %q: %w", s.path, err)
	}

	var defs []rules.Definition
	if info.IsDir() {
		defs, err = s.loadDirectory()
	} else {
		defs, err = loadFile(s.path)
	}
	if err != nil {
		return nil, err
	}

	if err := checkUniqueIDs(defs); err != nil {
		return nil, err
	}

	s.logger.Info("loaded rule definitions",
		"path", s.path,
		"rule_count", len(defs),
	)

	return defs, nil
}

func (s *FileSource) loadDirectory() ([]rules.Definition, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule directory %q: %w", s.path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(s.path, entry.Name()))
		}
	}
	sort.Strings(files)

	var defs []rules.Definition
	for _, file := range files {
		loaded, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

func loadFile(path string) ([]rules.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %q: %w", path, err)
	}

	var doc ruleFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %q: %w", path, err)
	}

	for i, def := range doc.Rules {
		if def.ID == "" {
			return nil, fmt.Errorf("rule file %q: rule %d has no id", path, i)
		}
		if def.Condition == "" {
			return nil, fmt.Errorf("rule file %q: rule %q has no condition", path, def.ID)
		}
	}

	return doc.Rules, nil
}

func checkUniqueIDs(defs []rules.Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.ID] {
			return fmt.Errorf("duplicate rule id %q", def.ID)
		}
		seen[def.ID] = true
	}
	return nil
}
