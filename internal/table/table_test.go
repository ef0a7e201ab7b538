package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestTable_Render(t *testing.T) {
	noColor(t)
	tbl := New(
		Column{Header: "ID"},
		Column{Header: "Source"},
		Column{Header: "Calls", Align: AlignRight},
	)
	tbl.AddRow("good-faith", "France (Civil Law)", "1")
	tbl.AddRow("force-majeure", "Germany (BGB)", "12")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  ID             Source              Calls", lines[0])
	assert.Equal(t, "  -------------  ------------------  -----", lines[1])
	assert.Equal(t, "  good-faith     France (Civil Law)      1", lines[2])
	assert.Equal(t, "  force-majeure  Germany (BGB)          12", lines[3])
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_UnicodeWidth(t *testing.T) {
	noColor(t)
	tbl := New(Column{Header: "Lang"}, Column{Header: "X"})
	tbl.AddRow("Français", "1")
	tbl.AddRow("en", "2")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "  en        2\n")
}

func TestTable_MissingAndExtraValues(t *testing.T) {
	noColor(t)
	tbl := New(Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("only-one")
	tbl.AddRow("x", "y", "ignored")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "only-one")
	assert.NotContains(t, buf.String(), "ignored")
}

func TestTable_ColorFuncPadsByRawWidth(t *testing.T) {
	tbl := New(
		Column{Header: "Status", Color: func(v string) string { return "<" + v + ">" }},
		Column{Header: "Model"},
	)
	tbl.AddRow("OK", "gpt-4o")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "<OK>      gpt-4o")
}

func TestTable_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf))
	assert.Empty(t, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTable_WriteError(t *testing.T) {
	tbl := New(Column{Header: "A"})
	err := tbl.Render(failWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render table")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Is ther...", Truncate("Is there a duty of good faith?", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
	tbl := New(Column{Header: "S", MaxWidth: 6})
	tbl.AddRow("scenario text")
	assert.Equal(t, 1, tbl.Len())
}

func TestColors(t *testing.T) {
	noColor(t)
	assert.Equal(t, "OK", ColorStatus("OK"))
	assert.Equal(t, "(repo)", ColorSource("(repo)"))
	assert.Equal(t, "Presets", Title("Presets"))
}
