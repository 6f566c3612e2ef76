package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	cfg      *config.Config
	renderer *Renderer
}

// HandleIndex handles GET / with forms for the other pages.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "index", IndexPageData{
		PageData:         h.renderer.page("C1 Assist", ""),
		SessionExtension: h.cfg.SessionExtension,
	})
}

// HandleSession handles GET /session?path=... and lists the folders
// registered in a session database.
func (h *Handlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		h.renderer.renderError(w, r, errors.NewInvalidInput("path is required"))
		return
	}

	result, err := ops.Inspect(h.cfg, ops.InspectInput{DatabasePath: path})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "session", SessionPageData{
		PageData:    h.renderer.page("Session", "session"),
		Session:     result,
		SummaryHTML: renderMarkdown(sessionSummary(result)),
	})
}

// HandlePlan handles GET /plan?name=...&folders=...&location=... and shows
// what creating the project would do.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := ops.CreateInput{
		Name:        q.Get("name"),
		FolderCount: parseIntParam(r, "folders", 0),
		Location:    q.Get("location"),
	}

	result, err := ops.Plan(h.cfg, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "plan", PlanPageData{
		PageData:    h.renderer.page("Plan", "plan"),
		Plan:        result,
		Name:        input.Name,
		FolderCount: input.FolderCount,
		Location:    input.Location,
	})
}

// parseIntParam reads an integer query parameter, returning def when the
// parameter is absent or malformed.
func parseIntParam(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
