package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

const (
	notificationTarget     = "admin_notification"
	notificationIdentifier = "casting-admin"
)

// notifyNewSubmission tells the admin channels about a stored submission. It is
// best effort: one attempt per channel, and a failure is persisted instead of retried.
func (h *Handler) notifyNewSubmission(ctx context.Context, submission domain.Submission) {
	discordDest := strings.TrimSpace(h.discordDestination)
	slackDest := strings.TrimSpace(h.slackDestination)
	if strings.TrimSpace(h.messengerEndpoint) == "" || (discordDest == "" && slackDest == "") {
		return
	}

	var discordErr, slackErr error
	attempts := 0

	if discordDest != "" {
		attempts++
		discordErr = h.sendMessengerMessage(ctx, discordDest, notificationIdentifier, buildDiscordSubmissionMessage(h.dashboardBaseURL, submission))
		if discordErr == nil {
			return
		}
		h.logger.Warn("discord notification failed", "err", discordErr, "submission_id", submission.ID)
	}

	if slackDest != "" {
		attempts++
		slackErr = h.sendMessengerMessage(ctx, slackDest, notificationIdentifier, buildSlackSubmissionMessage(h.dashboardBaseURL, submission))
		if slackErr == nil {
			return
		}
		h.logger.Warn("slack notification failed", "err", slackErr, "submission_id", submission.ID)
	}

	h.persistNotificationFailure(ctx, submission, errors.Join(discordErr, slackErr), attempts)
}

func buildDiscordSubmissionMessage(dashboardBaseURL string, s domain.Submission) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**Nova inscrição** de %s\n", s.FullName))
	builder.WriteString(fmt.Sprintf("- Perfil: %s\n", s.ProfileType))
	builder.WriteString(fmt.Sprintf("- Idade: %d | Sexo: %s | Província: %s\n", s.Age, s.Gender, s.Province))
	builder.WriteString(fmt.Sprintf("- Telefone: %s\n", s.Phone))
	builder.WriteString(fmt.Sprintf("- Fotos: %d | CV: %s\n", len(s.Photos), yesNo(s.CVPortfolio != nil)))
	if base := strings.TrimRight(strings.TrimSpace(dashboardBaseURL), "/"); base != "" && s.ID != "" {
		builder.WriteString(fmt.Sprintf("[Abrir no painel](%s/%s)\n", base, s.ID))
	}
	return builder.String()
}

func buildSlackSubmissionMessage(dashboardBaseURL string, s domain.Submission) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":clapper: Nova inscrição de %s (%s)\n", s.FullName, s.ProfileType))
	builder.WriteString(fmt.Sprintf("Idade: %d, %s, %s\n", s.Age, s.Gender, s.Province))
	builder.WriteString(fmt.Sprintf("Telefone: %s\n", s.Phone))
	if base := strings.TrimRight(strings.TrimSpace(dashboardBaseURL), "/"); base != "" && s.ID != "" {
		builder.WriteString(fmt.Sprintf("Painel: %s/%s\n", base, s.ID))
	}
	return builder.String()
}

func yesNo(v bool) string {
	if v {
		return "sim"
	}
	return "não"
}

func (h *Handler) persistNotificationFailure(ctx context.Context, s domain.Submission, cause error, attempts int) {
	if h.failedNotifications == nil || cause == nil {
		return
	}
	payload := map[string]any{
		"submission_id": s.ID,
		"full_name":     s.FullName,
		"phone":         s.Phone,
		"profile_type":  s.ProfileType.String(),
		"identifier":    notificationIdentifier,
	}
	if err := h.failedNotifications.Record(ctx, notificationTarget, payload, cause, attempts); err != nil {
		h.logger.Error("failed to persist notification failure", "err", err, "submission_id", s.ID)
	}
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, userID, text string) error {
	payload := map[string]any{
		"userId":      userID,
		"text":        text,
		"destination": destination,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("build messenger payload: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send messenger request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger responded status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
