package web

import (
	"bytes"
	"embed"
	"html/template"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/lexbridge/lexbridge/internal/labels"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/presets"
	"github.com/lexbridge/lexbridge/internal/session"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// otherModel is the model selector value that means "use model_other".
const otherModel = "__other__"

// markdown renders model output. Raw HTML and dangerous link schemes are
// dropped because goldmark's renderer is not put in unsafe mode.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type kindOption struct {
	ID       llm.Kind
	Name     string
	Selected bool
}

type page struct {
	Dir         string
	Labels      labels.Set
	Language    string
	Subtitle    template.HTML
	Notice      string
	Presets     []presets.Preset
	Kinds       []kindOption
	Models      []string
	OtherModel  string
	CustomModel bool
	Selection   session.Selection
	HasEnvKey   bool
	Inputs      session.Inputs
	ResultHTML  template.HTML
	ResultError string
	Stream      bool
}

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output with raw HTML disabled
}

func (s *Server) buildPage(st session.State) (page, error) {
	subtitle, err := renderMarkdown(st.Labels.Get("subtitle"))
	if err != nil {
		return page{}, err
	}
	var result template.HTML
	if st.Result.Markdown != "" {
		if result, err = renderMarkdown(st.Result.Markdown); err != nil {
			return page{}, err
		}
	}

	sel := st.Selection
	kinds := make([]kindOption, 0, len(llm.Kinds()))
	for _, k := range llm.Kinds() {
		kinds = append(kinds, kindOption{ID: k, Name: k.DisplayName(), Selected: k == sel.Provider})
	}
	models := sel.Provider.Models()
	language := st.Language
	if language == labels.DefaultLanguage && s.opts.Language != "" {
		language = s.opts.Language
	}

	return page{
		Dir:         st.Direction(),
		Labels:      st.Labels,
		Language:    language,
		Subtitle:    subtitle,
		Notice:      st.Notice,
		Presets:     s.svc.AllPresets(),
		Kinds:       kinds,
		Models:      models,
		OtherModel:  otherModel,
		CustomModel: sel.Model != "" && !slices.Contains(models, sel.Model),
		Selection:   sel,
		HasEnvKey:   s.opts.KeyLookup(sel.Provider) != "",
		Inputs:      st.Inputs,
		ResultHTML:  result,
		ResultError: st.Result.Error,
		Stream:      s.opts.Stream,
	}, nil
}

// stateView is the JSON form of a session returned to API clients.
type stateView struct {
	Language  string            `json:"language"`
	Direction string            `json:"direction"`
	Labels    map[string]string `json:"labels"`
	Inputs    inputsView        `json:"inputs"`
	Selection selectionView     `json:"selection"`
	Result    *resultView       `json:"result,omitempty"`
	Notice    string            `json:"notice,omitempty"`
}

type inputsView struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Scenario string `json:"scenario"`
}

type selectionView struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`
}

type resultView struct {
	Markdown string `json:"markdown,omitempty"`
	Error    string `json:"error,omitempty"`
	Model    string `json:"model,omitempty"`
}

func viewOf(st session.State) stateView {
	v := stateView{
		Language:  st.Language,
		Direction: st.Direction(),
		Labels:    st.Labels.Clone(),
		Inputs:    inputsView(st.Inputs),
		Selection: selectionView{
			Provider: string(st.Selection.Provider),
			Model:    st.Selection.Model,
			BaseURL:  st.Selection.BaseURL,
		},
		Notice: st.Notice,
	}
	if !st.Result.Empty() {
		v.Result = &resultView{Markdown: st.Result.Markdown, Error: st.Result.Error, Model: st.Result.Model}
	}
	return v
}
