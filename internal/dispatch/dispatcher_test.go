package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentSMS struct {
	phone   string
	message string
}

type mockSMS struct {
	failFor map[string]error
	sent    []sentSMS
	calls   int
}

func (m *mockSMS) SendSMS(ctx context.Context, phone, message string) (string, error) {
	m.calls++
	if err, ok := m.failFor[phone]; ok {
		return "", err
	}
	m.sent = append(m.sent, sentSMS{phone: phone, message: message})
	return "sms-1", nil
}

var _ SMSSender = (*mockSMS)(nil)

type mockEmail struct {
	fail     error
	subjects []string
	calls    int
}

func (m *mockEmail) SendEmail(ctx context.Context, to, subject, message string) (string, error) {
	m.calls++
	m.subjects = append(m.subjects, subject)
	if m.fail != nil {
		return "", m.fail
	}
	return "email-1", nil
}

var _ EmailSender = (*mockEmail)(nil)

type mockRecorder struct {
	sms, email []bool
	dispatches int
}

func (m *mockRecorder) ObserveSMS(ok bool)   { m.sms = append(m.sms, ok) }
func (m *mockRecorder) ObserveEmail(ok bool) { m.email = append(m.email, ok) }
func (m *mockRecorder) ObserveDispatch(contacts int, took time.Duration) {
	m.dispatches++
}

func countContaining(errs []string, sub string) int {
	n := 0
	for _, e := range errs {
		if strings.Contains(e, sub) {
			n++
		}
	}
	return n
}

func TestDispatch_SMSOnlyToContactsWithPhone(t *testing.T) {
	sms := &mockSMS{failFor: map[string]error{"0500000002": errors.New("invalid number")}}
	d := NewDispatcher(sms, nil, WithDelay(0))

	contacts := []Contact{
		{Name: "Dana", Phone: "0500000001"},
		{Name: "Avi", Phone: "0500000002"},
		{Name: "Noa", Email: "noa@example.com"},
		{Name: "Ido", Phone: "  "},
	}

	result := d.Dispatch(context.Background(), contacts, "hello", Options{SendSMS: true})

	withPhone := 2
	assert.Equal(t, withPhone, sms.calls)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.SMSSent)
	assert.Equal(t, withPhone, result.SMSSent+countContaining(result.Errors, "SMS"))
	assert.Equal(t, []string{"SMS failed for Avi: invalid number"}, result.Errors)
}

func TestDispatch_EmailFailuresNeverAbort(t *testing.T) {
	email := &mockEmail{fail: errors.New("gateway down")}
	d := NewDispatcher(nil, email, WithDelay(0))

	contacts := []Contact{
		{Name: "A", Email: "a@example.com"},
		{Name: "B", Email: "b@example.com"},
		{Name: "C"},
	}

	result := d.Dispatch(context.Background(), contacts, "msg", Options{SendEmail: true, Subject: "Flight update"})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, email.calls)
	assert.Equal(t, 0, result.EmailSent)
	assert.Equal(t, []string{
		"Email failed for A: gateway down",
		"Email failed for B: gateway down",
	}, result.Errors)
	assert.Equal(t, []string{"Flight update", "Flight update"}, email.subjects)
}

func TestDispatch_BothChannels(t *testing.T) {
	sms := &mockSMS{}
	email := &mockEmail{}
	rec := &mockRecorder{}
	d := NewDispatcher(sms, email, WithDelay(0), WithRecorder(rec))

	contacts := []Contact{
		{Name: "A", Phone: "1", Email: "a@example.com"},
		{Name: "B", Phone: "2"},
	}

	result := d.Dispatch(context.Background(), contacts, "msg", Options{SendSMS: true, SendEmail: true})

	assert.Equal(t, 2, result.SMSSent)
	assert.Equal(t, 1, result.EmailSent)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []bool{true, true}, rec.sms)
	assert.Equal(t, []bool{true}, rec.email)
	assert.Equal(t, 1, rec.dispatches)
	require.Len(t, sms.sent, 2)
	assert.Equal(t, sentSMS{phone: "1", message: "msg"}, sms.sent[0])
}

func TestDispatch_ChannelsDisabled(t *testing.T) {
	sms := &mockSMS{}
	email := &mockEmail{}
	d := NewDispatcher(sms, email, WithDelay(0))

	result := d.Dispatch(context.Background(), []Contact{{Name: "A", Phone: "1", Email: "a@example.com"}}, "msg", Options{})

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, sms.calls)
	assert.Equal(t, 0, email.calls)
	assert.NotNil(t, result.Errors)
}

func TestDispatch_MissingGatewayRecordsError(t *testing.T) {
	d := NewDispatcher(nil, nil, WithDelay(0))

	result := d.Dispatch(context.Background(), []Contact{{Phone: "0501234567"}}, "msg", Options{SendSMS: true})

	assert.Equal(t, []string{"SMS failed for 0501234567: sms gateway not configured"}, result.Errors)
}

func TestDispatch_PacesContacts(t *testing.T) {
	sms := &mockSMS{}
	d := NewDispatcher(sms, nil, WithDelay(20*time.Millisecond))

	contacts := []Contact{{Phone: "1"}, {Phone: "2"}, {Phone: "3"}}
	start := time.Now()
	result := d.Dispatch(context.Background(), contacts, "msg", Options{SendSMS: true})
	took := time.Since(start)

	assert.Equal(t, 3, result.SMSSent)
	assert.GreaterOrEqual(t, took, 35*time.Millisecond)
}

func TestDispatch_CancelledContextKeepsTotal(t *testing.T) {
	sms := &mockSMS{}
	d := NewDispatcher(sms, nil, WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	contacts := []Contact{{Phone: "1"}, {Phone: "2"}}
	result := d.Dispatch(ctx, contacts, "msg", Options{SendSMS: true})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 0, sms.calls)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "dispatch interrupted after 0 of 2 contacts")
}
