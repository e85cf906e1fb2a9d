package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/dispatch"
	"github.com/sangkips/flight-notify-service/internal/domains/messages"
	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/domains/templates"
	"github.com/sangkips/flight-notify-service/internal/gateway"
	"github.com/sangkips/flight-notify-service/internal/queue"
	"github.com/sangkips/flight-notify-service/internal/render"
)

var (
	ErrAsyncDisabled        = errors.New("async dispatch is not enabled")
	ErrTemplatesUnavailable = errors.New("template store is not configured")
)

// TemplateSource is satisfied by *templates.Service.
type TemplateSource interface {
	Get(ctx context.Context, id string) (templates.Template, error)
}

// RouteSource is satisfied by *routes.Service.
type RouteSource interface {
	Lookup(ctx context.Context, flightNumber string) (routes.FlightRoute, error)
}

// HistoryRecorder is satisfied by *messages.Service.
type HistoryRecorder interface {
	Record(ctx context.Context, m messages.SentMessage) (messages.SentMessage, bool, error)
}

// JobPublisher is satisfied by *queue.RabbitMQ.
type JobPublisher interface {
	PublishDispatchJob(ctx context.Context, job queue.DispatchJob) error
}

// Deps carries everything the service is built from. SMS, Email, Recorder,
// Converter, Templates, Routes, History and Jobs may be nil.
type Deps struct {
	SMS        dispatch.SMSSender
	Email      dispatch.EmailSender
	Dispatcher *dispatch.Dispatcher
	Recorder   dispatch.Recorder
	Renderer   *render.Renderer
	Directory  *render.Directory
	Converter  *render.Converter
	Templates  TemplateSource
	Routes     RouteSource
	History    HistoryRecorder
	Jobs       JobPublisher
	Subject    string
}

type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatch.NewDispatcher(deps.SMS, deps.Email, dispatch.WithRecorder(deps.Recorder))
	}
	if deps.Directory == nil {
		deps.Directory = render.NewDirectory()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.NewRenderer(deps.Directory)
	}
	return &Service{deps: deps}
}

func (s *Service) subject(requested string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	return s.deps.Subject
}

// SendSMS sends one message. Gateway failures come back in the result,
// never as an error.
func (s *Service) SendSMS(ctx context.Context, phone, message string) gateway.Result {
	if s.deps.SMS == nil {
		return gateway.Result{Success: false, Error: "sms gateway not configured"}
	}
	id, err := s.deps.SMS.SendSMS(ctx, phone, message)
	if s.deps.Recorder != nil {
		s.deps.Recorder.ObserveSMS(err == nil)
	}
	if err != nil {
		log.Error().Err(err).Msg("SMS send failed")
	}
	return gateway.NewResult(id, err)
}

func (s *Service) SendEmail(ctx context.Context, to, subject, message string) gateway.Result {
	if s.deps.Email == nil {
		return gateway.Result{Success: false, Error: "email gateway not configured"}
	}
	id, err := s.deps.Email.SendEmail(ctx, to, s.subject(subject), message)
	if s.deps.Recorder != nil {
		s.deps.Recorder.ObserveEmail(err == nil)
	}
	if err != nil {
		log.Error().Err(err).Msg("Email send failed")
	}
	return gateway.NewResult(id, err)
}

// HistoryMeta describes where a bulk message came from, for the history
// record.
type HistoryMeta struct {
	TemplateID     string
	TemplateName   string
	FlightNumber   string
	EnglishContent string
	SentBy         string
	JobID          string
}

// SendBulk runs the dispatcher over contacts and records the outcome in the
// history store. A failed history write is logged and does not affect the
// result.
func (s *Service) SendBulk(ctx context.Context, contacts []dispatch.Contact, message string, opts dispatch.Options, meta HistoryMeta) dispatch.Result {
	opts.Subject = s.subject(opts.Subject)
	result := s.deps.Dispatcher.Dispatch(ctx, contacts, message, opts)
	s.recordHistory(ctx, result, message, meta)
	return result
}

func (s *Service) recordHistory(ctx context.Context, result dispatch.Result, message string, meta HistoryMeta) {
	if s.deps.History == nil {
		return
	}
	_, pending, err := s.deps.History.Record(ctx, messages.SentMessage{
		TemplateID:     meta.TemplateID,
		TemplateName:   meta.TemplateName,
		FlightNumber:   meta.FlightNumber,
		HebrewContent:  message,
		EnglishContent: meta.EnglishContent,
		SentBy:         meta.SentBy,
		Recipients:     result.Total,
		SMSSent:        result.SMSSent,
		EmailSent:      result.EmailSent,
		Errors:         result.Errors,
		JobID:          meta.JobID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to record dispatch in history")
		return
	}
	if pending {
		log.Warn().Str("job_id", meta.JobID).Msg("Dispatch history queued locally")
	}
}

// EnqueueDispatch validates and publishes an async bulk job.
func (s *Service) EnqueueDispatch(ctx context.Context, req DispatchJobRequest, requestedBy string) (queue.DispatchJob, error) {
	if s.deps.Jobs == nil {
		return queue.DispatchJob{}, ErrAsyncDisabled
	}

	job := queue.DispatchJob{
		JobID:          uuid.New().String(),
		Contacts:       req.Contacts,
		Message:        req.Message,
		SendSMS:        req.SendSMS,
		SendEmail:      req.SendEmail,
		Subject:        s.subject(req.Subject),
		TemplateID:     req.TemplateID,
		TemplateName:   req.TemplateName,
		FlightNumber:   req.FlightNumber,
		EnglishContent: req.EnglishContent,
		RequestedBy:    requestedBy,
		EnqueuedAt:     time.Now().UTC(),
	}
	if err := job.Validate(); err != nil {
		return queue.DispatchJob{}, err
	}
	if err := s.deps.Jobs.PublishDispatchJob(ctx, job); err != nil {
		return queue.DispatchJob{}, err
	}
	return job, nil
}
