package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	publicapp "github.com/alcymedia/casting-caly/api/internal/public/application"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

// intakeOutcome is the result of one form submission as both surfaces render it.
type intakeOutcome struct {
	form       domain.IntakeForm
	notice     domain.Notice
	submission *domain.Submission
	err        error
}

func (h *Handler) submissionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := h.intake(w, r)
		if outcome.err != nil {
			common.WriteJSON(h.logger, w, common.StatusFor(outcome.err), submissionResponse{
				Notice: outcome.notice,
				Form:   outcome.form,
				Error:  &common.ErrorDetail{Title: outcome.notice.Title, Description: outcome.notice.Description},
			})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, submissionResponse{
			Notice:     outcome.notice,
			Submission: outcome.submission,
			Form:       outcome.form,
		})
	}
}

// intake reads the multipart form, enforces the form constraints, runs the
// submission workflow and, on success, clears the form.
func (h *Handler) intake(w http.ResponseWriter, r *http.Request) intakeOutcome {
	cmd, err := h.readIntake(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	var submission *domain.Submission
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), common.UploadTimeout)
		defer cancel()
		submission, err = h.submissions.Submit(ctx, cmd)
	}
	if err != nil {
		h.logIntakeFailure(cmd.Form, err)
		return intakeOutcome{form: cmd.Form, notice: domain.NoticeFor(err), err: err}
	}

	go h.notifyNewSubmission(context.Background(), *submission)

	form := cmd.Form
	form.Reset()
	return intakeOutcome{form: form, notice: domain.SubmissionReceived(), submission: submission}
}

func (h *Handler) logIntakeFailure(form domain.IntakeForm, err error) {
	switch {
	case apperr.IsValidation(err):
		h.logger.Info("submission rejected", "err", err)
	case errors.Is(err, apperr.ErrDuplicatePhone):
		h.logger.Info("duplicate phone rejected", "phone", form.Telefone)
	default:
		h.logger.Error("submission failed", "err", err, "phone", form.Telefone)
	}
}

// readIntake parses the request into a SubmitCommand. The returned form always
// carries whatever fields could be read so it can be echoed back.
func (h *Handler) readIntake(w http.ResponseWriter, r *http.Request) (publicapp.SubmitCommand, error) {
	var cmd publicapp.SubmitCommand

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(common.MaxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return cmd, apperr.Validation("fotos", "Os ficheiros enviados excedem o tamanho máximo permitido.")
		}
		return cmd, apperr.Validation("", "Não foi possível ler o formulário enviado.")
	}

	cmd.Form = domain.IntakeForm{
		Nome:      r.FormValue("nome"),
		Telefone:  r.FormValue("telefone"),
		Idade:     r.FormValue("idade"),
		Sexo:      r.FormValue("sexo"),
		Provincia: r.FormValue("provincia"),
		Perfil:    r.FormValue("perfil"),
		Motivacao: r.FormValue("motivacao"),
	}
	cmd.Form.Normalize()
	if err := cmd.Form.Validate(); err != nil {
		return cmd, err
	}

	photoHeaders := r.MultipartForm.File["fotos"]
	if err := domain.CheckPhotoCount(len(photoHeaders)); err != nil {
		return cmd, err
	}

	photos, err := readFiles("fotos", photoHeaders, domain.SniffPhoto)
	if err != nil {
		return cmd, err
	}
	cvs, err := readFiles("cv", r.MultipartForm.File["cv"], domain.SniffCV)
	if err != nil {
		return cmd, err
	}
	cmd.Photos = photos
	cmd.CVs = cvs
	return cmd, nil
}

func readFiles(field string, headers []*multipart.FileHeader, sniff func(*domain.UploadFile) error) ([]domain.UploadFile, error) {
	files := make([]domain.UploadFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > common.MaxFileBytes {
			return nil, apperr.Validation(field, fmt.Sprintf("O ficheiro %q excede o limite de %d MB.", header.Filename, common.MaxFileBytes>>20))
		}
		file, err := readFile(header)
		if err != nil {
			return nil, err
		}
		if err := sniff(&file); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readFile(header *multipart.FileHeader) (domain.UploadFile, error) {
	f, err := header.Open()
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, common.MaxFileBytes))
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return domain.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handler) formOptionsHandler() http.HandlerFunc {
	options := newFormOptions()
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, options)
	}
}
