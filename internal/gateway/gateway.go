// Package gateway talks to the third-party services that actually deliver
// SMS and email. Every sender returns the gateway's message id or an error;
// callers decide how to report failures.
package gateway

import (
	"fmt"
	"html"
	"strings"
)

// Result is the wire shape returned to the UI for a single send.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewResult converts a sender outcome into a Result.
func NewResult(messageID string, err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, MessageID: messageID}
}

// Error is a failure reported by the gateway in an otherwise valid response.
type Error struct {
	Code        int
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("gateway error code %d", e.Code)
	}
	return fmt.Sprintf("gateway error code %d: %s", e.Code, e.Description)
}

// htmlBody turns a plain-text message into a minimal HTML body. dir="auto"
// lets mail clients lay out Hebrew right-to-left.
func htmlBody(message string) string {
	lines := strings.Split(html.EscapeString(message), "\n")
	return `<div dir="auto" style="font-family:Arial,sans-serif;font-size:15px;">` +
		strings.Join(lines, "<br>") +
		`</div>`
}
