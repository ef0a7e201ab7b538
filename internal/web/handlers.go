package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/metrics"
	"github.com/lexbridge/lexbridge/internal/prompt"
	"github.com/lexbridge/lexbridge/internal/redact"
	"github.com/lexbridge/lexbridge/internal/session"
)

// User-facing notices.
const (
	noticeMissingScenario  = "⚠️ Please describe a legal scenario first."
	noticeTranslateMissing = "Missing API Key or Target Language."
	prefixTranslateFailed  = "Translation failed: "
	prefixAnalysisError    = "Analysis Error: "
)

func noticeMissingKey(k llm.Kind) string {
	return fmt.Sprintf("🔒 Please enter your %s API Key in the sidebar to proceed.", k.DisplayName())
}

func (s *Server) index(c *gin.Context) {
	st := s.load(c)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, viewOf(st))
		return
	}

	p, err := s.buildPage(st)
	if err != nil {
		slog.Error("build page", "error", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		slog.Error("render page", "error", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) applyPreset(c *gin.Context) {
	id := c.Param("id")
	p, ok := s.svc.Preset(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown preset %q", id)})
		return
	}
	st := s.load(c).ApplyPreset(p)
	s.save(st)
	s.respond(c, st)
}

func (s *Server) analyze(c *gin.Context) {
	st, cred := s.prepareAnalysis(c)
	res, err := s.svc.Analyze(c.Request.Context(), lexbridge.AnalyzeRequest{
		Provider: s.providerConfig(st.Selection, cred),
		Input:    prompt.Input(st.Inputs),
	})
	st = applyAnalysis(st, res, err, cred.key)
	s.save(st)
	s.respond(c, st)
}

// analyzeStream runs an analysis and sends the answer as Server-Sent Events:
// "delta" for each chunk, then "done" or "error". The final state is saved
// so a page reload shows the full result.
func (s *Server) analyzeStream(c *gin.Context) {
	st, cred := s.prepareAnalysis(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	res, err := s.svc.Analyze(c.Request.Context(), lexbridge.AnalyzeRequest{
		Provider: s.providerConfig(st.Selection, cred),
		Input:    prompt.Input(st.Inputs),
		OnDelta: func(delta string) {
			c.SSEvent("delta", gin.H{"text": delta})
			c.Writer.Flush()
		},
	})
	st = applyAnalysis(st, res, err, cred.key)
	s.save(st)

	switch {
	case err == nil:
		c.SSEvent("done", gin.H{"model": res.Model})
	case st.Notice != "":
		c.SSEvent("error", gin.H{"error": st.Notice})
	default:
		c.SSEvent("error", gin.H{"error": st.Result.Error})
	}
	c.Writer.Flush()
}

func (s *Server) translate(c *gin.Context) {
	st := s.load(c)
	st = st.WithSelection(selectionFrom(c, st.Selection))
	cred := s.keyFor(c, st.Selection.Provider)
	language := strings.TrimSpace(c.PostForm("language"))

	set, err := s.svc.TranslateLabels(c.Request.Context(), lexbridge.TranslateRequest{
		Provider: s.providerConfig(st.Selection, cred),
		Current:  st.Labels,
		Language: language,
	})
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey), errors.Is(err, lexbridge.ErrMissingLanguage):
		st = st.WithNotice(noticeTranslateMissing)
	case err != nil:
		st = st.WithNotice(prefixTranslateFailed + redact.With(err.Error(), cred.key))
	default:
		st = st.WithLabels(set, language).WithNotice("")
	}
	s.save(st)
	s.respond(c, st)
}

func (s *Server) reset(c *gin.Context) {
	st := s.load(c).Reset()
	s.save(st)
	s.respond(c, st)
}

// prepareAnalysis folds the submitted form into the session and resolves
// the API key. The key is returned, never stored.
func (s *Server) prepareAnalysis(c *gin.Context) (session.State, credentials) {
	st := s.load(c)
	st = st.WithSelection(selectionFrom(c, st.Selection))
	st = st.WithInputs(session.Inputs{
		Source:   c.PostForm("source"),
		Target:   c.PostForm("target"),
		Scenario: c.PostForm("scenario"),
	})
	return st, s.keyFor(c, st.Selection.Provider)
}

func applyAnalysis(st session.State, res *lexbridge.Analysis, err error, key string) session.State {
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey):
		return st.WithNotice(noticeMissingKey(st.Selection.Provider))
	case errors.Is(err, lexbridge.ErrMissingScenario):
		return st.WithNotice(noticeMissingScenario)
	case err != nil:
		return st.WithResult(session.Result{Error: prefixAnalysisError + redact.With(err.Error(), key)})
	}
	return st.WithResult(session.Result{Markdown: res.Markdown, Model: res.Model})
}

// selectionFrom applies the provider, model and base_url form fields to cur.
// Switching provider drops a model that belongs to the previous one.
func selectionFrom(c *gin.Context, cur session.Selection) session.Selection {
	sel := cur
	changed := false
	if v := strings.TrimSpace(c.PostForm("provider")); v != "" {
		if k, err := llm.ParseKind(v); err == nil && k != sel.Provider {
			sel = session.Selection{Provider: k}
			changed = true
		}
	}
	if v, ok := c.GetPostForm("model"); ok {
		model := strings.TrimSpace(v)
		custom := model == otherModel
		if custom {
			model = strings.TrimSpace(c.PostForm("model_other"))
		}
		if changed && !custom && !slices.Contains(sel.Provider.Models(), model) {
			model = ""
		}
		sel.Model = model
	}
	if v, ok := c.GetPostForm("base_url"); ok {
		sel.BaseURL = strings.TrimSpace(v)
	}
	return sel
}

// credentials is the API key for one request.
type credentials struct {
	key string
	// fromForm is set when the caller typed the key. Otherwise it is the
	// operator's key from KeyLookup.
	fromForm bool
}

func (s *Server) keyFor(c *gin.Context, kind llm.Kind) credentials {
	if k := strings.TrimSpace(c.PostForm("api_key")); k != "" {
		return credentials{key: k, fromForm: true}
	}
	return credentials{key: s.opts.KeyLookup(kind)}
}

// providerConfig builds the call config. The operator's key is only ever
// sent to the configured endpoint; a base URL from the form needs a key
// from the form too.
func (s *Server) providerConfig(sel session.Selection, cred credentials) llm.Config {
	baseURL := sel.BaseURL
	if !cred.fromForm {
		baseURL = ""
		if sel.Provider == s.opts.Defaults.Provider {
			baseURL = s.opts.Defaults.BaseURL
		}
	}
	return llm.Config{
		Kind:    sel.Provider,
		APIKey:  cred.key,
		BaseURL: baseURL,
		Model:   sel.Model,
		Timeout: s.opts.RequestTimeout,
	}
}

// load returns the caller's session, starting a new one when the cookie is
// missing or the session has expired.
func (s *Server) load(c *gin.Context) session.State {
	if id, err := c.Cookie(CookieName); err == nil && id != "" {
		if st, ok := s.store.Get(id); ok {
			return st
		}
	}
	st := session.New(session.NewID(), s.opts.Defaults)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, st.ID, 0, "/", "", false, true)
	s.save(st)
	return st
}

func (s *Server) save(st session.State) {
	s.store.Put(st)
	if counter, ok := s.store.(interface{ Len() int }); ok {
		metrics.Sessions.Set(float64(counter.Len()))
	}
}

// respond sends the session as JSON to API clients and redirects browsers
// back to the page.
func (s *Server) respond(c *gin.Context, st session.State) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, viewOf(st))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
