// Package labels holds the interface label set and translates it through a
// language model while keeping the key set fixed.
package labels

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Keys is the fixed label key list, in display order.
var Keys = []string{
	"title",
	"subtitle",
	"settings",
	"api_key_label",
	"model_label",
	"interface_lang_label",
	"translate_btn",
	"source_label",
	"target_label",
	"concept_label",
	"analyze_btn",
	"analysis_header",
	"spinner",
	"source_ph",
	"target_ph",
	"concept_ph",
}

// DefaultLanguage is the language of Default().
const DefaultLanguage = "English"

var defaults = Set{
	"title":                "LexBridge",
	"subtitle":             "Bridging legal systems through **Delta Learning**. We focus on what changes.",
	"settings":             "Configuration",
	"api_key_label":        "Gemini API Key",
	"model_label":          "Reasoning Model",
	"interface_lang_label": "Interface Language",
	"translate_btn":        "🌐 Translate Interface",
	"source_label":         "Source Jurisdiction",
	"target_label":         "Target Jurisdiction",
	"concept_label":        "Legal Scenario / Clause",
	"analyze_btn":          "⚡ Run Legal Analysis",
	"analysis_header":      "Legal Delta Analysis",
	"spinner":              "Consulting the digital experts...",
	"source_ph":            "e.g., France (Civil Law)",
	"target_ph":            "e.g., UK (Common Law)",
	"concept_ph":           "Paste a contract clause or describe a legal situation...",
}

// Set maps label keys to display strings.
type Set map[string]string

// Default returns a fresh copy of the English label set.
func Default() Set {
	return defaults.Clone()
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Get returns the label for key, falling back to the English default when s
// has no non-empty value for it.
func (s Set) Get(key string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return defaults[key]
}

// Validate checks that s holds exactly the fixed keys, each with a non-empty
// value. All problems are reported in a single *KeySetError.
func (s Set) Validate() error {
	var kerr KeySetError
	for _, k := range Keys {
		v, ok := s[k]
		switch {
		case !ok:
			kerr.Missing = append(kerr.Missing, k)
		case strings.TrimSpace(v) == "":
			kerr.Empty = append(kerr.Empty, k)
		}
	}
	for k := range s {
		if _, ok := defaults[k]; !ok {
			kerr.Extra = append(kerr.Extra, k)
		}
	}
	sort.Strings(kerr.Extra)

	if len(kerr.Missing)+len(kerr.Extra)+len(kerr.Empty) == 0 {
		return nil
	}
	return &kerr
}

// KeySetError reports a label set whose keys differ from the fixed list.
type KeySetError struct {
	Missing []string
	Extra   []string
	Empty   []string
}

func (e *KeySetError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected %s", strings.Join(e.Extra, ", ")))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, fmt.Sprintf("empty %s", strings.Join(e.Empty, ", ")))
	}
	return "labels: key set mismatch: " + strings.Join(parts, "; ")
}
