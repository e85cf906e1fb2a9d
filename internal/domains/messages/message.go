package messages

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// SentMessage is one history entry: what was sent, by whom, and how the
// dispatch went.
type SentMessage struct {
	ID             string    `json:"id" firestore:"-"`
	TemplateID     string    `json:"templateId" firestore:"templateId"`
	TemplateName   string    `json:"templateName" firestore:"templateName"`
	FlightNumber   string    `json:"flightNumber" firestore:"flightNumber"`
	HebrewContent  string    `json:"hebrewContent" firestore:"hebrewContent"`
	EnglishContent string    `json:"englishContent" firestore:"englishContent"`
	SentBy         string    `json:"sentBy" firestore:"sentBy"`
	Recipients     int       `json:"recipients" firestore:"recipients"`
	SMSSent        int       `json:"smsSent" firestore:"smsSent"`
	EmailSent      int       `json:"emailSent" firestore:"emailSent"`
	Errors         []string  `json:"errors" firestore:"errors"`
	JobID          string    `json:"jobId,omitempty" firestore:"jobId"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

type RecordRequest struct {
	TemplateID     string   `json:"templateId"`
	TemplateName   string   `json:"templateName"`
	FlightNumber   string   `json:"flightNumber"`
	HebrewContent  string   `json:"hebrewContent"`
	EnglishContent string   `json:"englishContent"`
	Recipients     int      `json:"recipients" validate:"gte=0"`
	SMSSent        int      `json:"smsSent" validate:"gte=0"`
	EmailSent      int      `json:"emailSent" validate:"gte=0"`
	Errors         []string `json:"errors"`
}

type RecordResponse struct {
	Message SentMessage `json:"message"`
	Pending bool        `json:"pending"`
}

type ListResponse struct {
	Data   []SentMessage `json:"data"`
	Source string        `json:"source"`
}
