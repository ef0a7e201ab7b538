package labels

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translated(t *testing.T, prefix string, drop ...string) string {
	t.Helper()
	out := map[string]string{}
	for k, v := range Default() {
		out[k] = prefix + v
	}
	for _, k := range drop {
		delete(out, k)
	}
	data, err := json.Marshal(out)
	require.NoError(t, err)
	return string(data)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Set{"title": "LexBridge", "analyze_btn": "Run"}, " Arabic ")
	assert.Equal(t,
		"Translate the values of this JSON to Arabic. Keep keys identical. Return ONLY raw JSON.\n\n"+
			"JSON:\n"+`{"analyze_btn":"Run","title":"LexBridge"}`,
		p)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"json fence", "```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"bare fence", "```\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"no fence", "  {\"a\":\"b\"}\n", `{"a":"b"}`},
		{"leading prose", "Here is the translation:\n\n```json\n{\"a\":\"b\"}\n```\nEnjoy!", `{"a":"b"}`},
		{"single line", "```json {\"a\":\"b\"} ```", `{"a":"b"}`},
		{"unterminated", "```json\n{\"a\":\"b\"}", `{"a":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestParseResponse_ProseAroundObject(t *testing.T) {
	s, err := ParseResponse(`Sure! {"title":"LexBrücke"} Hope this helps.`)
	require.NoError(t, err)
	assert.Equal(t, "LexBrücke", s["title"])
}

func TestParseResponse_Malformed(t *testing.T) {
	for _, in := range []string{"not json at all", `{"title": 3}`, "null", strings.Repeat("x", 500)} {
		_, err := ParseResponse(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.LessOrEqual(t, utf8.RuneCountInString(perr.Raw), maxRawInError+3)
	}
}

func TestParseResponse_MalformedArabicKeepsWholeRunes(t *testing.T) {
	_, err := ParseResponse("عذراً " + strings.Repeat("ب", 400))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, utf8.ValidString(perr.Raw))
	assert.Equal(t, maxRawInError+3, utf8.RuneCountInString(perr.Raw))
	assert.True(t, strings.HasSuffix(perr.Raw, "..."))
	assert.NotContains(t, err.Error(), `\x`)
}

func TestTranslate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "```json\n" + translated(t, "AR:") + "\n```"})
	tr := &Translator{Provider: mock}

	current := Default()
	out, err := tr.Translate(context.Background(), current, "Arabic", "gemini-1.5-flash")
	require.NoError(t, err)

	assert.Equal(t, "AR:LexBridge", out["title"])
	assert.Len(t, out, len(Keys))
	assert.Equal(t, "LexBridge", current["title"], "input is not modified")

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gemini-1.5-flash", calls[0].Model)
	assert.Contains(t, calls[0].Prompt, "to Arabic.")
}

func TestTranslate_MissingKey(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: translated(t, "", "spinner")})
	tr := &Translator{Provider: mock}

	out, err := tr.Translate(context.Background(), Default(), "German", "")
	assert.Nil(t, out)

	var kerr *KeySetError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, []string{"spinner"}, kerr.Missing)
}

func TestTranslate_ProviderError(t *testing.T) {
	boom := errors.New("429 quota")
	tr := &Translator{Provider: llm.NewMockProvider(llm.MockResponse{Err: boom})}

	_, err := tr.Translate(context.Background(), Default(), "German", "")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "translation: 429 quota")
}

func TestTranslate_Stub(t *testing.T) {
	tr := &Translator{Provider: llm.NewStubProvider()}
	out, err := tr.Translate(context.Background(), Default(), "Klingon", "")
	require.NoError(t, err)
	assert.Equal(t, "[stub] LexBridge", out["title"])
}
