package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evently/internal/model"
)

// Channel names accepted in a share request. Unknown methods are skipped.
const (
	MethodSMS          = "sms"
	MethodEmail        = "email"
	MethodNotification = "notification"
)

// Config holds the outbound channel endpoints and fan-out limits.
type Config struct {
	SMSAPIURL          string
	EmailAPIURL        string
	NotificationAPIURL string
	Concurrency        int
}

// Notifier delivers event invitations over external SMS, email and push
// notification services. Each channel is an opaque HTTP endpoint; delivery is
// best effort with per-recipient failure isolation.
type Notifier struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New creates a Notifier. The client must carry an explicit timeout so a slow
// channel cannot block a request indefinitely.
func New(cfg Config, client *http.Client, logger *zap.Logger) *Notifier {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Notifier{cfg: cfg, client: client, logger: logger}
}

// Share sends one outbound call per selected method per recipient. Failures
// are logged and never abort the remaining sends.
func (n *Notifier) Share(ctx context.Context, event *model.Event, methods, recipients []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n.cfg.Concurrency)

	for _, method := range methods {
		url, ok := n.endpoint(method)
		if !ok {
			n.logger.Warn("unknown share method", zap.String("method", method))
			continue
		}
		for _, recipient := range recipients {
			g.Go(func() error {
				if err := n.send(ctx, url, method, event, recipient); err != nil {
					n.logger.Error("share delivery failed",
						zap.String("method", method),
						zap.String("recipient", recipient),
						zap.String("event_id", event.ID.Hex()),
						zap.Error(err))
				}
				return nil
			})
		}
	}

	_ = g.Wait()
}

func (n *Notifier) endpoint(method string) (string, bool) {
	switch method {
	case MethodSMS:
		return n.cfg.SMSAPIURL, true
	case MethodEmail:
		return n.cfg.EmailAPIURL, true
	case MethodNotification:
		return n.cfg.NotificationAPIURL, true
	}
	return "", false
}

func (n *Notifier) send(ctx context.Context, url, method string, event *model.Event, recipient string) error {
	payload, err := json.Marshal(n.message(method, event, recipient))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s channel returned status %d", method, resp.StatusCode)
	}
	return nil
}

func (n *Notifier) message(method string, event *model.Event, recipient string) map[string]string {
	body := fmt.Sprintf("Event: %s\nDate: %s\nLocation: %s\nDescription: %s",
		event.Title, event.Date, event.Location, event.Description)

	msg := map[string]string{
		"message_id": uuid.New().String(),
		"to":         recipient,
	}
	switch method {
	case MethodSMS:
		msg["message"] = fmt.Sprintf("Event: %s on %s at %s", event.Title, event.Date, event.Location)
	case MethodEmail:
		msg["subject"] = "Invitation to " + event.Title
		msg["body"] = body
	case MethodNotification:
		msg["title"] = "Invitation to " + event.Title
		msg["body"] = body
	}
	return msg
}
