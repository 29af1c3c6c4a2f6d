package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	adminapp "github.com/alcymedia/casting-caly/api/internal/admin/application"
	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
)

const (
	loadFailedMessage   = "Não foi possível carregar as inscrições."
	notFoundMessage     = "Inscrição não encontrada."
	deleteFailedMessage = "Não foi possível excluir a inscrição."
	exportFailedMessage = "Não foi possível gerar o PDF."
)

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		dash, err := h.dashboard.Load(ctx)
		if err != nil {
			h.logger.Error("admin submission list fetch failed", "err", err)
			notice := admindomain.LoadFailedNotice(loadFailedMessage)
			common.WriteError(h.logger, w, err, notice.Title, notice.Description)
			return
		}

		auth, _ := common.AuthorizationFromContext(r.Context())
		submissions := dash.Submissions
		if submissions == nil {
			submissions = []admindomain.Submission{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, submissionListResponse{
			Admin:       adminHeader{Name: auth.Profile.Name, Role: auth.Profile.Role},
			Stats:       dash.Stats,
			Submissions: submissions,
		})
	}
}

func (h *Handler) submissionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		detail, err := h.dashboard.Detail(ctx, id)
		if err != nil {
			h.writeSubmissionError(w, "admin submission detail fetch failed", id, err, loadFailedMessage)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, detail)
	}
}

func (h *Handler) submissionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.dashboard.Delete(ctx, id); err != nil {
			h.writeSubmissionError(w, "admin submission delete failed", id, err, deleteFailedMessage)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) submissionExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), common.ExportTimeout)
		defer cancel()

		doc, err := h.dashboard.ExportSubmission(ctx, id)
		if err != nil {
			h.writeSubmissionError(w, "admin submission export failed", id, err, exportFailedMessage)
			return
		}
		h.writeDocument(w, doc)
	}
}

func (h *Handler) reportExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ExportTimeout)
		defer cancel()

		doc, err := h.dashboard.ExportReport(ctx)
		if err != nil {
			h.logger.Error("admin report export failed", "err", err)
			common.WriteError(h.logger, w, err, "Erro", exportFailedMessage)
			return
		}
		h.writeDocument(w, doc)
	}
}

func (h *Handler) writeSubmissionError(w http.ResponseWriter, msg, id string, err error, description string) {
	status := common.StatusFor(err)
	if status == http.StatusNotFound {
		common.WriteError(h.logger, w, err, "Não encontrado", notFoundMessage)
		return
	}
	h.logger.Error(msg, "submission_id", id, "err", err)
	common.WriteError(h.logger, w, err, "Erro", description)
}

func (h *Handler) writeDocument(w http.ResponseWriter, doc *adminapp.Document) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", contentDisposition(doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.logger.Warn("failed to write pdf", "file", doc.FileName, "err", err)
	}
}

// asciiFolder strips diacritics so "joão" becomes "joao".
var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// contentDisposition builds an attachment header with an ASCII filename and
// the exact UTF-8 name in the RFC 5987 filename* parameter.
func contentDisposition(name string) string {
	folded, _, err := transform.String(asciiFolder, name)
	if err != nil {
		folded = name
	}
	var fallback strings.Builder
	for _, r := range folded {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			fallback.WriteByte('_')
			continue
		}
		fallback.WriteRune(r)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback.String(), encodeRFC5987(name))
}

func encodeRFC5987(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
