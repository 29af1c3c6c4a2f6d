package public

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formPageData struct {
	Form    domain.IntakeForm
	Notice  *domain.Notice
	Options formOptionsResponse
}

func (h *Handler) formPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.renderForm(w, http.StatusOK, formPageData{Options: newFormOptions()})
	}
}

// formPostHandler serves browsers without script: the page is re-rendered with the notice.
func (h *Handler) formPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := h.intake(w, r)
		status := http.StatusOK
		if outcome.err != nil {
			status = common.StatusFor(outcome.err)
		}
		notice := outcome.notice
		h.renderForm(w, status, formPageData{Form: outcome.form, Notice: &notice, Options: newFormOptions()})
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, data formPageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render form page", "err", err)
		http.Error(w, "Erro interno.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug("failed to write form page", "err", err)
	}
}
