package domain

import (
	"errors"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

const (
	NoticeDefault     = "default"
	NoticeDestructive = "destructive"

	DuplicatePhoneMessage = "Este número de telefone já está registrado em nosso sistema."
	GenericFailureMessage = "Erro ao enviar inscrição. Tente novamente."
)

// Notice is the transient, human-readable message shown after an intake attempt.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// SubmissionReceived is the notice for a stored submission.
func SubmissionReceived() Notice {
	return Notice{
		Title:       "Inscrição enviada com sucesso!",
		Description: "Sua inscrição foi recebida. Nossa equipe entrará em contato em breve.",
		Variant:     NoticeDefault,
	}
}

// NoticeFor selects the failure message by matching err against the known
// categories: duplicate phone, photo count, field validation, then a generic fallback.
func NoticeFor(err error) Notice {
	notice := Notice{Title: "Erro na inscrição", Variant: NoticeDestructive}

	var ve *apperr.ValidationError
	switch {
	case errors.Is(err, apperr.ErrDuplicatePhone):
		notice.Description = DuplicatePhoneMessage
	case errors.As(err, &ve):
		notice.Description = ve.Message
	default:
		notice.Description = GenericFailureMessage
	}
	return notice
}
