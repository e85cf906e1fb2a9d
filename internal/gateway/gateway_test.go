package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSClient_SendSMS_Success(t *testing.T) {
	var got smsRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":0,"description":"ok","messageId":"sms-123"}`))
	}))
	defer srv.Close()

	client := NewSMSClient(SMSConfig{URL: srv.URL, Token: "secret", Sender: "ELAL"}, srv.Client())

	id, err := client.SendSMS(context.Background(), "0501234567", "טיסה LY001")
	require.NoError(t, err)
	assert.Equal(t, "sms-123", id)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, smsRequest{Sender: "ELAL", Message: "טיסה LY001", Recipients: []string{"0501234567"}}, got)
}

func TestSMSClient_SendSMS_BasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ops" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"status":0,"messageId":"sms-9"}`))
	}))
	defer srv.Close()

	client := NewSMSClient(SMSConfig{URL: srv.URL, Token: "secret", Username: "ops"}, srv.Client())

	id, err := client.SendSMS(context.Background(), "050", "hi")
	require.NoError(t, err)
	assert.Equal(t, "sms-9", id)
}

func TestSMSClient_SendSMS_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewSMSClient(SMSConfig{URL: srv.URL}, srv.Client())

	_, err := client.SendSMS(context.Background(), "050", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSMSClient_SendSMS_GatewayStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":7,"description":"invalid recipient"}`))
	}))
	defer srv.Close()

	client := NewSMSClient(SMSConfig{URL: srv.URL}, srv.Client())

	_, err := client.SendSMS(context.Background(), "abc", "hi")
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, 7, gwErr.Code)
	assert.Equal(t, "gateway error code 7: invalid recipient", err.Error())
}

func TestSMSClient_SendSMS_NoURL(t *testing.T) {
	client := NewSMSClient(SMSConfig{}, nil)

	_, err := client.SendSMS(context.Background(), "050", "hi")
	assert.Error(t, err)
}

func TestNewResult(t *testing.T) {
	assert.Equal(t, Result{Success: true, MessageID: "m1"}, NewResult("m1", nil))
	assert.Equal(t, Result{Success: false, Error: "boom"}, NewResult("ignored", errors.New("boom")))
}

func TestHTMLBody_EscapesAndBreaksLines(t *testing.T) {
	out := htmlBody("שלום <b>\nשורה שנייה")

	assert.True(t, strings.HasPrefix(out, `<div dir="auto"`))
	assert.Contains(t, out, "שלום &lt;b&gt;<br>שורה שנייה")
}

func TestResendEmail_RequestIsScheduled(t *testing.T) {
	e := NewResendEmail("re_test", "Flights <flights@example.com>", time.Minute)
	e.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }

	req := e.request("dana@example.com", "Flight update", "hello")

	assert.Equal(t, []string{"dana@example.com"}, req.To)
	assert.Equal(t, "Flight update", req.Subject)
	assert.Equal(t, "hello", req.Text)
	assert.Equal(t, "2024-03-05T10:01:00Z", req.ScheduledAt)
}

func TestResendEmail_NoDelaySendsImmediately(t *testing.T) {
	e := NewResendEmail("re_test", "flights@example.com", 0)

	req := e.request("dana@example.com", "s", "m")

	assert.Empty(t, req.ScheduledAt)
}

func TestSMTPEmail_MessageHeaders(t *testing.T) {
	e := NewSMTPEmail("smtp.example.com", 587, "user", "pass", "flights@example.com")

	msg := e.message("abc", "dana@example.com", "Flight update", "hello")

	assert.Equal(t, []string{"flights@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"dana@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"<abc@flight-notify>"}, msg.GetHeader("Message-ID"))
}

func TestMockSender(t *testing.T) {
	ok := NewMockSender(1, 0)
	id, err := ok.SendSMS(context.Background(), "050", "hi")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "mock-msg-"))

	fail := NewMockSender(-1, 0)
	_, err = fail.SendEmail(context.Background(), "a@b.c", "s", "m")
	assert.Error(t, err)
}

func TestMockSender_RespectsCancellation(t *testing.T) {
	s := NewMockSender(1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SendSMS(ctx, "050", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}
