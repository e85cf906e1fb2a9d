package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/flight-notify-service/internal/dispatch"
)

// DispatchJob is a bulk dispatch handed from the server to a worker.
type DispatchJob struct {
	JobID          string             `json:"job_id"`
	Contacts       []dispatch.Contact `json:"contacts"`
	Message        string             `json:"message"`
	SendSMS        bool               `json:"send_sms"`
	SendEmail      bool               `json:"send_email"`
	Subject        string             `json:"subject,omitempty"`
	TemplateID     string             `json:"template_id,omitempty"`
	TemplateName   string             `json:"template_name,omitempty"`
	FlightNumber   string             `json:"flight_number,omitempty"`
	EnglishContent string             `json:"english_content,omitempty"`
	RequestedBy    string             `json:"requested_by,omitempty"`
	EnqueuedAt     time.Time          `json:"enqueued_at"`
}

// ErrInvalidJob wraps every Validate failure.
var ErrInvalidJob = errors.New("invalid dispatch job")

func (j DispatchJob) Validate() error {
	switch {
	case j.JobID == "":
		return fmt.Errorf("%w: job_id is required", ErrInvalidJob)
	case len(j.Contacts) == 0:
		return fmt.Errorf("%w: no contacts", ErrInvalidJob)
	case strings.TrimSpace(j.Message) == "":
		return fmt.Errorf("%w: no message", ErrInvalidJob)
	case !j.SendSMS && !j.SendEmail:
		return fmt.Errorf("%w: no channel selected", ErrInvalidJob)
	}
	return nil
}

// Options returns the dispatcher options the job asks for.
func (j DispatchJob) Options() dispatch.Options {
	return dispatch.Options{SendSMS: j.SendSMS, SendEmail: j.SendEmail, Subject: j.Subject}
}
