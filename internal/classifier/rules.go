package classifier

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ruleFile is the YAML structure of a rule override file.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadFromDir reads *.yaml/*.yml rule files from a directory, concatenating
// their rules in filename order. Returns an empty slice when the directory
// holds no rule files, so callers can fall back to Default(). Individual
// unreadable files are skipped with a warning, matching how template
// loading tolerates partial directories.
func LoadFromDir(dir string) ([]Rule, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	var rules []Rule
	for _, file := range files {
		loaded, err := loadFile(file)
		if err != nil {
			slog.Warn("failed to load classifier rules", "file", file, "error", err)
			continue
		}
		rules = append(rules, loaded...)
	}

	if len(rules) > 0 {
		slog.Info("classifier rules loaded", "dir", dir, "files", len(files), "rules", len(rules))
	}
	return rules, nil
}

func loadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, r := range rf.Rules {
		if r.Category == "" {
			return nil, fmt.Errorf("rule %d: category is required", i)
		}
	}
	return rf.Rules, nil
}
