package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SentMessage struct {
	ID             uuid.UUID       `json:"id"`
	TemplateID     string          `json:"template_id"`
	TemplateName   string          `json:"template_name"`
	FlightNumber   string          `json:"flight_number"`
	HebrewContent  string          `json:"hebrew_content"`
	EnglishContent string          `json:"english_content"`
	SentBy         string          `json:"sent_by"`
	Recipients     int32           `json:"recipients"`
	SmsSent        int32           `json:"sms_sent"`
	EmailSent      int32           `json:"email_sent"`
	Errors         json.RawMessage `json:"errors"`
	JobID          string          `json:"job_id"`
	CreatedAt      time.Time       `json:"created_at"`
}
