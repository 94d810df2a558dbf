package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/techpazar/storefront/internal/models"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "10-peripherals.yaml", `
rules:
  - category: Mouse
    keywords: ["mouse"]
  - category: Keyboard
    keywords: ["keyboard"]
`)
	writeRuleFile(t, dir, "20-storage.yml", `
rules:
  - category: SSD
    keywords: ["ssd", "nvme"]
`)

	rules, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}

	// Filename order decides precedence.
	if rules[0].Category != models.CategoryMouse {
		t.Errorf("first rule category = %q, want %q", rules[0].Category, models.CategoryMouse)
	}
	if rules[2].Category != models.CategorySSD {
		t.Errorf("last rule category = %q, want %q", rules[2].Category, models.CategorySSD)
	}

	c, err := New(rules)
	if err != nil {
		t.Fatalf("New() with loaded rules failed: %v", err)
	}
	if got := c.Classify("portable NVMe enclosure"); got != models.CategorySSD {
		t.Errorf("Classify = %q, want %q", got, models.CategorySSD)
	}
}

func TestLoadFromDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "bad.yaml", "rules: [not a rule")
	writeRuleFile(t, dir, "good.yaml", `
rules:
  - category: Monitor
    keywords: ["monitor"]
`)

	rules, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected the bad file to be skipped, got %d rules", len(rules))
	}
	if rules[0].Category != models.CategoryMonitor {
		t.Errorf("rule category = %q, want %q", rules[0].Category, models.CategoryMonitor)
	}
}

func TestLoadFromDirMissingCategory(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "nocat.yaml", `
rules:
  - keywords: ["orphan"]
`)

	rules, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("expected file without categories to be skipped, got %d rules", len(rules))
	}
}

func TestLoadFromDirEmpty(t *testing.T) {
	rules, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("expected no rules from empty dir, got %d", len(rules))
	}
}
