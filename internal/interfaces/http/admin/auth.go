package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
)

const (
	invalidCredentialsMessage = "E-mail ou senha inválidos."
	signUpNotAllowedMessage   = "Apenas o administrador autorizado pode se registrar."
	accessDeniedMessage       = "Acesso negado. Você não tem permissões administrativas."
	sessionInvalidMessage     = "Sessão inválida ou expirada. Faça login novamente."
	alreadyRegisteredMessage  = "Este e-mail já está registrado."
	unexpectedMessage         = "Ocorreu um erro inesperado. Tente novamente."
)

// authMessage picks the Portuguese description for an auth or validation failure.
func authMessage(err error) string {
	var ve *apperr.ValidationError
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return invalidCredentialsMessage
	case errors.Is(err, apperr.ErrSignUpNotAllowed):
		return signUpNotAllowedMessage
	case errors.Is(err, apperr.ErrAccessDenied):
		return accessDeniedMessage
	case errors.Is(err, apperr.ErrSessionInvalid):
		return sessionInvalidMessage
	case errors.Is(err, apperr.ErrAlreadyRegistered):
		return alreadyRegisteredMessage
	case errors.As(err, &ve):
		return ve.Message
	default:
		return unexpectedMessage
	}
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	r.Body = http.MaxBytesReader(w, r.Body, common.MaxAuthRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, apperr.Validation("", "Requisição inválida.")
	}
	return req, nil
}

func (h *Handler) signUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.decodeCredentials(w, r)
		if err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
			defer cancel()
			err = h.auth.SignUp(ctx, req.Email, req.Password)
		}
		if err != nil {
			h.logAuthFailure("sign-up", req.Email, err)
			notice := admindomain.SignUpFailedNotice(authMessage(err))
			common.WriteError(h.logger, w, err, notice.Title, notice.Description)
			return
		}
		h.logger.Info("admin account created", "email", admindomain.NormalizeEmail(req.Email))
		common.WriteJSON(h.logger, w, http.StatusCreated, noticeResponse{Notice: admindomain.SignedUpNotice()})
	}
}

func (h *Handler) signInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.decodeCredentials(w, r)
		var auth *admindomain.Authorization
		if err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
			defer cancel()
			auth, err = h.auth.SignIn(ctx, req.Email, req.Password)
		}
		if err != nil {
			h.logAuthFailure("sign-in", req.Email, err)
			notice := admindomain.SignInFailedNotice(authMessage(err))
			if errors.Is(err, apperr.ErrAccessDenied) {
				notice = admindomain.AccessDeniedNotice()
			}
			common.WriteError(h.logger, w, err, notice.Title, notice.Description)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, signInResponse{
			Notice:  admindomain.SignedInNotice(auth.Profile.Name),
			Session: auth.Session,
			Profile: auth.Profile,
		})
	}
}

func (h *Handler) signOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()
		if err := h.auth.SignOut(ctx, common.BearerToken(r)); err != nil {
			h.logger.Error("sign-out failed", "err", err)
			common.WriteError(h.logger, w, err, "Erro", unexpectedMessage)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, noticeResponse{Notice: admindomain.SignedOutNotice()})
	}
}

// requireAdmin runs the admin guard and stores its result in the request context.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		auth, err := h.auth.RequireAdmin(ctx, common.BearerToken(r))
		cancel()
		if err != nil {
			if !apperr.IsAuth(err) {
				h.logger.Error("admin guard failed", "err", err)
			}
			notice := admindomain.LoadFailedNotice(authMessage(err))
			if errors.Is(err, apperr.ErrAccessDenied) {
				notice = admindomain.AccessDeniedNotice()
			}
			common.WriteError(h.logger, w, err, notice.Title, notice.Description)
			return
		}
		next.ServeHTTP(w, r.WithContext(common.ContextWithAuthorization(r.Context(), *auth)))
	})
}

func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, _ := common.AuthorizationFromContext(r.Context())
		auth.Session.Token = ""
		common.WriteJSON(h.logger, w, http.StatusOK, sessionResponse{Session: auth.Session, Profile: auth.Profile})
	}
}

func (h *Handler) logAuthFailure(op, email string, err error) {
	if apperr.IsAuth(err) || apperr.IsValidation(err) {
		h.logger.Info("admin auth rejected", "op", op, "email", admindomain.NormalizeEmail(email), "err", err)
		return
	}
	h.logger.Error("admin auth failed", "op", op, "err", err)
}
