package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"evently/internal/model"
)

type capture struct {
	mu       sync.Mutex
	payloads []map[string]string
}

func (c *capture) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		c.mu.Lock()
		c.payloads = append(c.payloads, payload)
		c.mu.Unlock()
		w.WriteHeader(status)
	}
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func testEvent() *model.Event {
	return &model.Event{
		Title:       "Go meetup",
		Date:        "2026-09-12",
		Location:    "Main hall",
		Description: "Monthly meetup",
	}
}

func newTestNotifier(cfg Config) *Notifier {
	return New(cfg, &http.Client{Timeout: time.Second}, zap.NewNop())
}

func TestNotifier_Share_AllMethodsAllRecipients(t *testing.T) {
	sms, email, push := &capture{}, &capture{}, &capture{}

	smsSrv := httptest.NewServer(sms.handler(http.StatusOK))
	defer smsSrv.Close()
	emailSrv := httptest.NewServer(email.handler(http.StatusOK))
	defer emailSrv.Close()
	pushSrv := httptest.NewServer(push.handler(http.StatusOK))
	defer pushSrv.Close()

	n := newTestNotifier(Config{
		SMSAPIURL:          smsSrv.URL,
		EmailAPIURL:        emailSrv.URL,
		NotificationAPIURL: pushSrv.URL,
		Concurrency:        2,
	})

	recipients := []string{"r1", "r2", "r3"}
	n.Share(context.Background(), testEvent(), []string{MethodSMS, MethodEmail, MethodNotification}, recipients)

	assert.Equal(t, 3, sms.count())
	assert.Equal(t, 3, email.count())
	assert.Equal(t, 3, push.count())
}

func TestNotifier_Share_FailureIsolation(t *testing.T) {
	email := &capture{}

	smsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer smsSrv.Close()
	emailSrv := httptest.NewServer(email.handler(http.StatusOK))
	defer emailSrv.Close()

	n := newTestNotifier(Config{
		SMSAPIURL:   smsSrv.URL,
		EmailAPIURL: emailSrv.URL,
		Concurrency: 1,
	})

	// a failing sms channel must not abort the email sends
	n.Share(context.Background(), testEvent(), []string{MethodSMS, MethodEmail}, []string{"r1", "r2"})

	assert.Equal(t, 2, email.count())
}

func TestNotifier_Share_UnknownMethodSkipped(t *testing.T) {
	sms := &capture{}
	smsSrv := httptest.NewServer(sms.handler(http.StatusOK))
	defer smsSrv.Close()

	n := newTestNotifier(Config{SMSAPIURL: smsSrv.URL, Concurrency: 1})
	n.Share(context.Background(), testEvent(), []string{"carrier-pigeon", MethodSMS}, []string{"r1"})

	assert.Equal(t, 1, sms.count())
}

func TestNotifier_MessageRendering(t *testing.T) {
	sms, email := &capture{}, &capture{}

	smsSrv := httptest.NewServer(sms.handler(http.StatusOK))
	defer smsSrv.Close()
	emailSrv := httptest.NewServer(email.handler(http.StatusOK))
	defer emailSrv.Close()

	n := newTestNotifier(Config{
		SMSAPIURL:   smsSrv.URL,
		EmailAPIURL: emailSrv.URL,
		Concurrency: 1,
	})

	n.Share(context.Background(), testEvent(), []string{MethodSMS, MethodEmail}, []string{"r1"})

	assert.Equal(t, 1, sms.count())
	smsMsg := sms.payloads[0]
	assert.Equal(t, "r1", smsMsg["to"])
	assert.Equal(t, "Event: Go meetup on 2026-09-12 at Main hall", smsMsg["message"])
	assert.NotEmpty(t, smsMsg["message_id"])

	assert.Equal(t, 1, email.count())
	emailMsg := email.payloads[0]
	assert.Equal(t, "Invitation to Go meetup", emailMsg["subject"])
	assert.Contains(t, emailMsg["body"], "Location: Main hall")
}
