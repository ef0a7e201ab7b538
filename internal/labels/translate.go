package labels

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lexbridge/lexbridge/internal/llm"
)

// maxRawInError bounds the model text carried by a ParseError.
const maxRawInError = 200

// Translator rewrites label values into another language via a Provider.
type Translator struct {
	Provider llm.Provider
}

// ParseError reports a translation response that is not a JSON object of
// strings.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("labels: malformed translation response: %v (response: %q)", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Translate asks the model to translate the values of current into language
// and returns the new set. current is never modified; on any error the caller
// keeps using it.
func (t *Translator) Translate(ctx context.Context, current Set, language, model string) (Set, error) {
	resp, err := t.Provider.Complete(ctx, llm.Request{
		Prompt: BuildPrompt(current, language),
		Model:  model,
	})
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}

	out, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("labels translated", "language", language, "keys", len(out))
	return out, nil
}

// BuildPrompt renders the translation instruction for current. The JSON is
// serialised with sorted keys so the prompt is stable.
func BuildPrompt(current Set, language string) string {
	data, _ := json.Marshal(map[string]string(current)) //nolint:errcheck // map[string]string always marshals

	var b strings.Builder
	fmt.Fprintf(&b, "Translate the values of this JSON to %s. ", strings.TrimSpace(language))
	b.WriteString("Keep keys identical. Return ONLY raw JSON.\n\n")
	b.WriteString("JSON:\n")
	b.Write(data)
	return b.String()
}

// ParseResponse strips code fences from content and decodes it as a flat
// object of strings.
func ParseResponse(content string) (Set, error) {
	body := StripFences(content)

	var out map[string]string
	err := json.Unmarshal([]byte(body), &out)
	if err != nil {
		// Tolerate prose around an unfenced object.
		start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
		if start >= 0 && end > start {
			if err2 := json.Unmarshal([]byte(body[start:end+1]), &out); err2 == nil {
				err = nil
			}
		}
	}
	if err != nil {
		return nil, &ParseError{Raw: truncate(content, maxRawInError), Err: err}
	}
	if out == nil {
		return nil, &ParseError{Raw: truncate(content, maxRawInError), Err: fmt.Errorf("response is not a JSON object")}
	}
	return Set(out), nil
}

// StripFences returns the body of the first Markdown code block in content,
// dropping any text before or after it. Content without fences is returned
// trimmed.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.Contains(content, "```") {
		return content
	}

	var body []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inBlock {
				break
			}
			inBlock = true
			continue
		}
		if inBlock {
			body = append(body, line)
		}
	}
	if len(body) > 0 {
		return strings.TrimSpace(strings.Join(body, "\n"))
	}

	// Fences on the same line as the payload.
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
