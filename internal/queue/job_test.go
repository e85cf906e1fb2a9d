package queue

import (
	"errors"
	"testing"

	"github.com/sangkips/flight-notify-service/internal/dispatch"
)

func TestDispatchJob_Validate(t *testing.T) {
	valid := DispatchJob{
		JobID:    "job-1",
		Contacts: []dispatch.Contact{{Name: "Dana", Phone: "050"}},
		Message:  "hello",
		SendSMS:  true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid job, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*DispatchJob)
	}{
		{"missing id", func(j *DispatchJob) { j.JobID = "" }},
		{"no contacts", func(j *DispatchJob) { j.Contacts = nil }},
		{"blank message", func(j *DispatchJob) { j.Message = "  " }},
		{"no channel", func(j *DispatchJob) { j.SendSMS = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := valid
			tt.mutate(&j)
			if err := j.Validate(); !errors.Is(err, ErrInvalidJob) {
				t.Errorf("Expected ErrInvalidJob, got %v", err)
			}
		})
	}
}

func TestDispatchJob_Options(t *testing.T) {
	j := DispatchJob{SendEmail: true, Subject: "Flight update"}
	opts := j.Options()
	if opts.SendSMS || !opts.SendEmail || opts.Subject != "Flight update" {
		t.Errorf("Unexpected options: %+v", opts)
	}
}
