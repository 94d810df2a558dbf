// Package classifier infers a category label from a free-text product
// description. Feed descriptions have no reliable category field, so an
// ordered rule cascade encodes the priority needed to resolve ambiguous
// terms (a GPU spec mentioning its video RAM must not classify as RAM).
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/techpazar/storefront/internal/models"
)

// Rule matches a description when any pattern or keyword hits and no
// exclusion does. Rules are evaluated in order; the first match wins.
type Rule struct {
	Category        string   `yaml:"category"`
	Patterns        []string `yaml:"patterns"`
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

type compiledRule struct {
	category        string
	patterns        []*regexp.Regexp
	keywords        []string
	excludeKeywords []string
	excludePatterns []*regexp.Regexp
}

// Classifier applies an ordered rule list to product descriptions.
type Classifier struct {
	rules []compiledRule
}

// trailingAnnotation captures a "(Category)" suffix some feed entries carry.
var trailingAnnotation = regexp.MustCompile(`\(([^)]+)\)\s*$`)

// New compiles the given rules. Rule categories must be on the fixed
// category list (anything else would be unreachable via navigation).
func New(rules []Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		label, ok := models.CanonicalCategory(r.Category)
		if !ok || label == models.CategoryAll {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		cr := compiledRule{category: label}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): invalid pattern %q: %w", i, label, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		for _, p := range r.ExcludePatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): invalid exclude pattern %q: %w", i, label, p, err)
			}
			cr.excludePatterns = append(cr.excludePatterns, re)
		}
		for _, k := range r.Keywords {
			cr.keywords = append(cr.keywords, strings.ToLower(k))
		}
		for _, k := range r.ExcludeKeywords {
			cr.excludeKeywords = append(cr.excludeKeywords, strings.ToLower(k))
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// Classify returns the category label for a description. Deterministic,
// no side effects; runs once per product at catalog load.
func (c *Classifier) Classify(description string) string {
	lower := strings.ToLower(description)

	for _, r := range c.rules {
		if r.matches(lower) {
			return r.category
		}
	}

	// Last resort before Other: a trailing parenthesized annotation that
	// names a known category, e.g. "DX-550 Silent (Cooling)".
	if m := trailingAnnotation.FindStringSubmatch(strings.TrimSpace(description)); m != nil {
		if label, ok := models.CanonicalCategory(strings.TrimSpace(m[1])); ok && label != models.CategoryAll {
			return label
		}
	}

	return models.CategoryOther
}

func (r *compiledRule) matches(lower string) bool {
	hit := false
	for _, re := range r.patterns {
		if re.MatchString(lower) {
			hit = true
			break
		}
	}
	if !hit {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				hit = true
				break
			}
		}
	}
	if !hit {
		return false
	}
	for _, k := range r.excludeKeywords {
		if strings.Contains(lower, k) {
			return false
		}
	}
	for _, re := range r.excludePatterns {
		if re.MatchString(lower) {
			return false
		}
	}
	return true
}

// Default returns the built-in rule cascade. Order is load-bearing: chip
// model patterns run before the bare keyword checks so a GPU listing that
// mentions its RAM size stays a graphics card, and the cooling rule
// excludes cases, PSUs and GPUs whose descriptions all mention fans.
func Default() []Rule {
	return []Rule{
		{
			Category: models.CategoryGraphicsCard,
			Patterns: []string{`\b(rtx|gtx)\s*(\d{4}|\d{3}0)`, `\brx\s*(\d{4}|\d{3}0)`},
			Keywords: []string{"arc a"},
		},
		{
			Category: models.CategoryProcessor,
			Patterns: []string{`\b(ryzen|core i)\s*(\d|x)\b`},
			Keywords: []string{"socket"},
		},
		{
			Category:        models.CategoryMotherboard,
			Patterns:        []string{`\b(b\d{3}m?|x\d{3}|z\d{3}|a\d{3})\b`},
			ExcludeKeywords: []string{"case"},
		},
		{Category: models.CategoryGraphicsCard, Keywords: []string{"graphics card"}},
		{Category: models.CategoryProcessor, Keywords: []string{"processor"}},
		{Category: models.CategoryMotherboard, Keywords: []string{"motherboard", "mainboard"}},
		{
			Category:        models.CategoryRAM,
			Patterns:        []string{`\d+gb\s*ddr\d`},
			Keywords:        []string{"ram"},
			ExcludeKeywords: []string{"graphics card"},
		},
		{Category: models.CategorySSD, Keywords: []string{"ssd", "m.2", "nvme"}},
		{
			Category: models.CategoryPowerSupply,
			Patterns: []string{`\d{3,}w.*(80\+|pfc)`, `(80\+|pfc).*\d{3,}w`},
			Keywords: []string{"psu", "power supply"},
		},
		{
			Category:        models.CategoryCooling,
			Keywords:        []string{"cooler", "cooling", "fan"},
			ExcludeKeywords: []string{"case", "power supply", "psu"},
			ExcludePatterns: []string{`\b(rtx|gtx|rx)\b`},
		},
		{Category: models.CategoryCase, Keywords: []string{"case", "chassis"}},
		{
			Category: models.CategoryMonitor,
			Patterns: []string{`\d{2,}\s*(inch|")`},
			Keywords: []string{"monitor"},
		},
		{Category: models.CategoryMouse, Keywords: []string{"mouse"}},
		{Category: models.CategoryKeyboard, Keywords: []string{"keyboard"}},
		{Category: models.CategoryHeadset, Keywords: []string{"headset", "headphone"}},
		{Category: models.CategorySpeaker, Keywords: []string{"speaker"}},
	}
}
