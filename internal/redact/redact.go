// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

// Package redact strips API keys from strings before they appear in the UI,
// logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// minSecretLen guards against redacting short values that would match
// ordinary text.
const minSecretLen = 4

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"GEMINI_API_KEY",
	"GOOGLE_API_KEY",
	"OPENAI_API_KEY",
	"GROQ_API_KEY",
	"ANTHROPIC_API_KEY",
	"LEXBRIDGE_API_KEY",
}

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if len(val) >= minSecretLen {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// String replaces any occurrence of a known sensitive environment variable
// value with "[REDACTED]". Secret values are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	return replace(s, cachedSecrets)
}

// With redacts the environment secrets plus the given per-request secrets,
// such as a key typed into the web form.
func With(s string, secrets ...string) string {
	return replace(String(s), secrets)
}

// Key shortens an API key for display, keeping the first and last few
// characters ("AIzaS...TCM").
func Key(key string) string {
	if len(key) <= 9 {
		return Placeholder
	}
	return key[:5] + "..." + key[len(key)-4:]
}

func replace(s string, secrets []string) string {
	for _, secret := range secrets {
		if len(secret) < minSecretLen {
			continue
		}
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}
