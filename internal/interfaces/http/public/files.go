package public

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">` +
	`<rect width="400" height="400" fill="#e5e7eb"/>` +
	`<path d="M120 270l60-80 45 55 30-35 45 60z" fill="#9ca3af"/>` +
	`<circle cx="250" cy="150" r="22" fill="#9ca3af"/></svg>`

// fileHandler streams a stored object. The bucket is public, like the photo links shown on the dashboard.
func (h *Handler) fileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.objects == nil || chi.URLParam(r, "bucket") != h.objects.Bucket() {
			common.WriteJSON(h.logger, w, http.StatusNotFound, notFoundBody())
			return
		}
		objectPath := chi.URLParam(r, "*")
		if unescaped, err := url.PathUnescape(objectPath); err == nil {
			objectPath = unescaped
		}
		objectPath = strings.TrimPrefix(objectPath, "/")
		if objectPath == "" {
			common.WriteJSON(h.logger, w, http.StatusNotFound, notFoundBody())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.ExportTimeout)
		defer cancel()

		object, err := h.objects.OpenObject(ctx, objectPath)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, notFoundBody())
				return
			}
			h.logger.Error("failed to open stored object", "path", objectPath, "err", err)
			common.WriteError(h.logger, w, err, "Erro", "Não foi possível carregar o ficheiro.")
			return
		}
		defer object.Close()

		w.Header().Set("Content-Type", object.ContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		if !domain.IsPhotoContentType(object.ContentType) {
			// CVs and anything else that is not a plain raster image are downloaded, never rendered inline.
			w.Header().Set("Content-Disposition", "attachment")
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if object.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(object.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, object); err != nil {
			h.logger.Warn("stored object stream interrupted", "path", objectPath, "err", err)
		}
	}
}

func (h *Handler) placeholderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = io.WriteString(w, placeholderSVG)
	}
}

func notFoundBody() common.ErrorBody {
	return common.ErrorBody{Error: common.ErrorDetail{Title: "Não encontrado", Description: "O ficheiro solicitado não existe."}}
}
