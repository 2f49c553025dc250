package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/async"
)

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	secret    string
	processor interfaces.WebhookProcessor
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, processor interfaces.WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		processor: processor,
	}
}

// Handle processes webhook requests. Delivery is fire-and-forget: once
// the signature and payload check out the relay work runs in the
// background, and GitHub only observes whether the webhook itself was
// accepted.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Hub-Signature-256")
	if !h.verifySignature(body, signature) {
		logger.Warn("invalid webhook signature")
		writeError(ctx, w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	event := buildWebhookEvent(r, body)

	if !event.IsSupportedEvent() {
		logger.Debug("ignoring webhook event",
			"id", event.ID,
			"type", event.Type,
			"action", event.Action,
		)
		writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	payload, err := github.ParseWebHook(string(event.Type), body)
	if err != nil {
		logger.Error("failed to parse webhook payload", "error", err, "type", event.Type)
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	logger.Info("webhook event received",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
	)

	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := h.processor.ProcessEvent(ctx, event, payload)
		return err
	})

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "accepted"})
}

// buildWebhookEvent assembles event metadata from the request headers
// and the shared top-level payload fields
func buildWebhookEvent(r *http.Request, body []byte) *model.WebhookEvent {
	event := &model.WebhookEvent{
		ID:         r.Header.Get("X-GitHub-Delivery"),
		Type:       model.WebhookEventType(r.Header.Get("X-GitHub-Event")),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	var meta struct {
		Action     string `json:"action"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		Sender struct {
			Login string `json:"login"`
		} `json:"sender"`
	}
	// Shape errors surface later in ParseWebHook; metadata is best-effort
	_ = json.Unmarshal(body, &meta)

	event.Action = meta.Action
	event.Repository = meta.Repository.FullName
	event.Sender = meta.Sender.Login

	return event
}

// verifySignature verifies the webhook signature
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
