package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/dispatch"
	"github.com/sangkips/flight-notify-service/internal/domains/notifications"
	"github.com/sangkips/flight-notify-service/internal/queue"
)

// Consumer is satisfied by *queue.RabbitMQ.
type Consumer interface {
	Consume() (<-chan amqp091.Delivery, error)
}

// BulkSender is satisfied by *notifications.Service.
type BulkSender interface {
	SendBulk(ctx context.Context, contacts []dispatch.Contact, message string, opts dispatch.Options, meta notifications.HistoryMeta) dispatch.Result
}

// Worker runs queued bulk dispatch jobs one at a time.
type Worker struct {
	consumer Consumer
	sender   BulkSender
}

func NewWorker(consumer Consumer, sender BulkSender) *Worker {
	return &Worker{
		consumer: consumer,
		sender:   sender,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.consumer.Consume()
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	log.Info().Msg("worker started, waiting for dispatch jobs")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("rabbitMQ channel closed")
			}
			w.processMessage(ctx, d)
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, d amqp091.Delivery) {
	var job queue.DispatchJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal dispatch job")
		d.Reject(false)
		return
	}
	if err := job.Validate(); err != nil {
		log.Error().Err(err).Str("job_id", job.JobID).Msg("dropping invalid dispatch job")
		d.Reject(false)
		return
	}

	// A redelivered job may already have reached some contacts. Sending it
	// again would message them twice.
	if d.Redelivered {
		log.Warn().Str("job_id", job.JobID).Msg("dropping redelivered dispatch job")
		d.Reject(false)
		return
	}

	log.Info().Str("job_id", job.JobID).Int("contacts", len(job.Contacts)).Msg("processing dispatch job")

	result := w.sender.SendBulk(ctx, job.Contacts, job.Message, job.Options(), notifications.HistoryMeta{
		TemplateID:     job.TemplateID,
		TemplateName:   job.TemplateName,
		FlightNumber:   job.FlightNumber,
		EnglishContent: job.EnglishContent,
		SentBy:         job.RequestedBy,
		JobID:          job.JobID,
	})

	// Per-contact failures are part of the result; the job itself is done.
	log.Info().
		Str("job_id", job.JobID).
		Int("sms_sent", result.SMSSent).
		Int("email_sent", result.EmailSent).
		Int("errors", len(result.Errors)).
		Msg("dispatch job finished")
	d.Ack(false)
}
