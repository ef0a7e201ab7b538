// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

// Package session holds per-browser UI state.
//
// A State is a value. Actions return a new State and never modify the
// receiver, so a Store only ever swaps whole values.
package session

import (
	"strings"

	"github.com/lexbridge/lexbridge/internal/labels"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/presets"
)

// Inputs are the three comparison fields.
type Inputs struct {
	Source   string
	Target   string
	Scenario string
}

// Selection is the chosen provider and model. API keys are never stored.
type Selection struct {
	Provider llm.Kind
	Model    string
	BaseURL  string
}

// Result is the outcome of the last analysis: Markdown on success, or an
// already-redacted error message.
type Result struct {
	Markdown string
	Error    string
	Model    string
}

// Empty reports whether no analysis has been run.
func (r Result) Empty() bool {
	return r.Markdown == "" && r.Error == ""
}

// State is one browser session. Treat the Labels map as read-only; use
// WithLabels to change it.
type State struct {
	ID        string
	Labels    labels.Set
	Language  string
	Inputs    Inputs
	Selection Selection
	Result    Result
	Notice    string
}

// New returns the initial state for a session.
func New(id string, sel Selection) State {
	return State{
		ID:        id,
		Labels:    labels.Default(),
		Language:  labels.DefaultLanguage,
		Selection: sel,
	}
}

// WithInputs replaces the comparison fields.
func (s State) WithInputs(in Inputs) State {
	s.Inputs = in
	return s.cloneLabels()
}

// ApplyPreset fills the comparison fields from p.
func (s State) ApplyPreset(p presets.Preset) State {
	return s.WithInputs(Inputs{Source: p.Source, Target: p.Target, Scenario: p.Scenario})
}

// WithSelection replaces the provider selection. A blank model keeps the
// kind's default.
func (s State) WithSelection(sel Selection) State {
	sel.Model = strings.TrimSpace(sel.Model)
	if sel.Model == "" {
		sel.Model = sel.Provider.DefaultModel()
	}
	s.Selection = sel
	return s.cloneLabels()
}

// WithLabels installs a translated label set and its language.
func (s State) WithLabels(set labels.Set, language string) State {
	s.Labels = set.Clone()
	s.Language = language
	return s
}

// WithResult records an analysis outcome and clears any notice.
func (s State) WithResult(r Result) State {
	s.Result = r
	s.Notice = ""
	return s.cloneLabels()
}

// WithNotice sets the warning shown to the user.
func (s State) WithNotice(msg string) State {
	s.Notice = msg
	return s.cloneLabels()
}

// Reset returns the initial state, keeping the ID and provider selection.
func (s State) Reset() State {
	return New(s.ID, s.Selection)
}

// Direction is the HTML dir attribute for the current language.
func (s State) Direction() string {
	return labels.Direction(s.Language)
}

func (s State) cloneLabels() State {
	s.Labels = s.Labels.Clone()
	return s
}
