package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/presets"
)

// newTestCmd redirects rootCmd's I/O to buffers and resets every flag.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	resetGlobalFlags()
	resetAnalyzeFlags()
	resetTranslateFlags()
	resetConfigFlags()
	serveAddr = ""

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetContext(context.Background())
	return rootCmd, stdout, stderr
}

// isolate runs the test in an empty directory with an empty global config
// and no provider keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	withKeys(t, nil)
	return dir
}

// withKeys swaps keyLookup for a fixed map.
func withKeys(t *testing.T, keys map[llm.Kind]string) {
	t.Helper()
	orig := keyLookup
	keyLookup = func(k llm.Kind) string { return keys[k] }
	t.Cleanup(func() { keyLookup = orig })
}

// withMockProvider makes every command use mock instead of a real provider.
func withMockProvider(t *testing.T, mock *llm.MockProvider) {
	t.Helper()
	orig := newService
	newService = func(catalog *presets.Catalog) *lexbridge.Service {
		return &lexbridge.Service{
			Factory: func(llm.Config) (llm.Provider, error) { return mock, nil },
			Presets: catalog,
		}
	}
	t.Cleanup(func() { newService = orig })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
