package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// SMSSender delivers one text message and returns the gateway message id.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

// EmailSender delivers one email and returns the gateway message id.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, message string) (string, error)
}

// Recorder observes per-contact outcomes. It is optional.
type Recorder interface {
	ObserveSMS(ok bool)
	ObserveEmail(ok bool)
	ObserveDispatch(contacts int, took time.Duration)
}

type Options struct {
	SendSMS   bool
	SendEmail bool
	Subject   string
}

// Result aggregates one dispatch run. Counters only grow during a run.
type Result struct {
	Total     int      `json:"total"`
	SMSSent   int      `json:"smsSent"`
	EmailSent int      `json:"emailSent"`
	Errors    []string `json:"errors"`
}

var (
	errSMSNotConfigured   = errors.New("sms gateway not configured")
	errEmailNotConfigured = errors.New("email gateway not configured")
)

// DefaultDelay is the pause between two contacts.
const DefaultDelay = 100 * time.Millisecond

// Dispatcher sends one message to a list of contacts, strictly one contact
// at a time in input order. Gateway failures are recorded in the result and
// never stop the run.
type Dispatcher struct {
	sms      SMSSender
	email    EmailSender
	limiter  *rate.Limiter
	recorder Recorder
}

type Option func(*Dispatcher)

// WithDelay paces contacts at most one per d. Zero disables pacing.
func WithDelay(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d <= 0 {
			disp.limiter = nil
			return
		}
		disp.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithRecorder(r Recorder) Option {
	return func(disp *Dispatcher) {
		disp.recorder = r
	}
}

func NewDispatcher(sms SMSSender, email EmailSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sms:     sms,
		email:   email,
		limiter: rate.NewLimiter(rate.Every(DefaultDelay), 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends message to every contact. Result.Total always equals
// len(contacts). If ctx ends mid-run the remaining contacts are reported
// as a single error entry.
func (d *Dispatcher) Dispatch(ctx context.Context, contacts []Contact, message string, opts Options) Result {
	start := time.Now()
	result := Result{
		Total:  len(contacts),
		Errors: []string{},
	}

	for i, c := range contacts {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("dispatch interrupted after %d of %d contacts: %v", i, len(contacts), err))
				log.Warn().Err(err).Int("processed", i).Int("total", len(contacts)).Msg("dispatch interrupted")
				break
			}
		}
		d.sendOne(ctx, c, message, opts, &result)
	}

	if d.recorder != nil {
		d.recorder.ObserveDispatch(len(contacts), time.Since(start))
	}

	log.Info().
		Int("total", result.Total).
		Int("sms_sent", result.SMSSent).
		Int("email_sent", result.EmailSent).
		Int("errors", len(result.Errors)).
		Msg("dispatch complete")

	return result
}

func (d *Dispatcher) sendOne(ctx context.Context, c Contact, message string, opts Options, result *Result) {
	if opts.SendSMS && strings.TrimSpace(c.Phone) != "" {
		err := errSMSNotConfigured
		if d.sms != nil {
			_, err = d.sms.SendSMS(ctx, strings.TrimSpace(c.Phone), message)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("SMS failed for %s: %v", displayName(c), err))
			log.Warn().Err(err).Str("contact", displayName(c)).Msg("sms send failed")
		} else {
			result.SMSSent++
		}
		if d.recorder != nil {
			d.recorder.ObserveSMS(err == nil)
		}
	}

	if opts.SendEmail && strings.TrimSpace(c.Email) != "" {
		err := errEmailNotConfigured
		if d.email != nil {
			_, err = d.email.SendEmail(ctx, strings.TrimSpace(c.Email), opts.Subject, message)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Email failed for %s: %v", displayName(c), err))
			log.Warn().Err(err).Str("contact", displayName(c)).Msg("email send failed")
		} else {
			result.EmailSent++
		}
		if d.recorder != nil {
			d.recorder.ObserveEmail(err == nil)
		}
	}
}

func displayName(c Contact) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Phone != "":
		return c.Phone
	default:
		return c.Email
	}
}
