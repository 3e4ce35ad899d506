package text

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAbbreviations is the built-in whole-word abbreviation table,
// expanded before synthesis so the voice reads full words. It can be
// replaced wholesale with LoadAbbreviations.
var DefaultAbbreviations = map[string]string{
	"dr.":    "doutor",
	"dra.":   "doutora",
	"sr.":    "senhor",
	"sra.":   "senhora",
	"prof.":  "professor",
	"profa.": "professora",
	"etc.":   "et cetera",
	"ex.":    "exemplo",
	"obs.":   "observação",
}

// LoadAbbreviations reads an abbreviation table from a YAML file mapping
// abbreviations to their expansions.
func LoadAbbreviations(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified table file
	if err != nil {
		return nil, fmt.Errorf("read abbreviation table: %w", err)
	}
	table := make(map[string]string)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse abbreviation table: %w", err)
	}
	return table, nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	punctSpacing  = regexp.MustCompile(`([.!?])([A-Z])`)

	// numberToken matches either an already-wrapped number or a bare
	// standalone integer. Already-wrapped matches are left untouched so
	// that cleaning stays idempotent.
	numberToken = regexp.MustCompile(`<say-as interpret-as="number">\d+</say-as>|\b\d+\b`)
)

type abbrevRule struct {
	re   *regexp.Regexp
	full string
}

// Cleaner normalizes sentences for synthesis. The transformation order is
// fixed: whitespace collapse, punctuation spacing, abbreviation expansion,
// number markup. Clean is idempotent.
type Cleaner struct {
	rules []abbrevRule
}

// NewCleaner creates a Cleaner with the given abbreviation table.
// A nil table selects DefaultAbbreviations.
func NewCleaner(abbreviations map[string]string) *Cleaner {
	if abbreviations == nil {
		abbreviations = DefaultAbbreviations
	}
	keys := make([]string, 0, len(abbreviations))
	for k := range abbreviations {
		keys = append(keys, k)
	}
	slices.Sort(keys) // deterministic rule order

	rules := make([]abbrevRule, 0, len(keys))
	for _, abbr := range keys {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(abbr))
		rules = append(rules, abbrevRule{re: re, full: abbreviations[abbr]})
	}
	return &Cleaner{rules: rules}
}

// Clean normalizes a raw sentence.
func (c *Cleaner) Clean(raw string) string {
	s := whitespaceRun.ReplaceAllString(raw, " ")
	s = punctSpacing.ReplaceAllString(s, "$1 $2")
	for _, r := range c.rules {
		s = r.re.ReplaceAllString(s, r.full)
	}
	s = wrapNumbers(s)
	return strings.TrimSpace(s)
}

// wrapNumbers wraps standalone integer tokens in a pronunciation tag so the
// synthesis voice reads them as numerals. Numbers already wrapped are left
// as-is.
func wrapNumbers(s string) string {
	return numberToken.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasPrefix(m, "<") {
			return m
		}
		return `<say-as interpret-as="number">` + m + `</say-as>`
	})
}
