package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Normalizer collapses raw provider activity types into aggregation
// categories. The zero rule set mirrors the provider's sport taxonomy:
// every ski variant lands in one bucket, "Virtual" rides and runs count
// as their outdoor equivalent, and walking verbs group under Hike.
type Normalizer struct {
	suffixGroups  map[string]string
	stripPrefixes []string
	aliases       map[string]string
}

// NewNormalizer returns a normalizer with the built-in rule table.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		suffixGroups:  map[string]string{"ski": "Ski"},
		stripPrefixes: []string{"Virtual"},
		aliases: map[string]string{
			"Walk":     "Hike",
			"Snowshoe": "Hike",
		},
	}
}

// rulesFile is the YAML shape of an overrides file.
type rulesFile struct {
	SuffixGroups  map[string]string `yaml:"suffix_groups"`
	StripPrefixes []string          `yaml:"strip_prefixes"`
	Aliases       map[string]string `yaml:"aliases"`
}

// LoadRules merges overrides from a YAML file into the built-in table.
func (n *Normalizer) LoadRules(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read category rules: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("parse category rules: %w", err)
	}
	for suffix, category := range rf.SuffixGroups {
		n.suffixGroups[strings.ToLower(suffix)] = category
	}
	n.stripPrefixes = append(n.stripPrefixes, rf.StripPrefixes...)
	for from, to := range rf.Aliases {
		n.aliases[from] = to
	}
	return nil
}

// Normalize maps a raw activity type label to its category. Suffix groups
// win over prefix stripping, which wins over plain aliases.
func (n *Normalizer) Normalize(raw string) string {
	lower := strings.ToLower(raw)
	for suffix, category := range n.suffixGroups {
		if strings.HasSuffix(lower, suffix) {
			return category
		}
	}
	for _, prefix := range n.stripPrefixes {
		if len(raw) > len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
			raw = raw[len(prefix):]
			break
		}
	}
	if alias, ok := n.aliases[raw]; ok {
		return alias
	}
	return raw
}
