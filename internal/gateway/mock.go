package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// MockSender simulates both gateways for local runs and demos.
type MockSender struct {
	successRate float64
	maxLatency  time.Duration
}

// NewMockSender creates a mock sender with the given success rate.
func NewMockSender(successRate float64, maxLatency time.Duration) *MockSender {
	return &MockSender{
		successRate: successRate,
		maxLatency:  maxLatency,
	}
}

func (s *MockSender) deliver(ctx context.Context, to string) (string, error) {
	if s.maxLatency > 0 {
		select {
		case <-time.After(time.Duration(rand.Int63n(int64(s.maxLatency)))):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if rand.Float64() > s.successRate {
		return "", fmt.Errorf("mock provider error: failed to deliver message to %s", to)
	}
	return fmt.Sprintf("mock-msg-%s", uuid.New().String()), nil
}

func (s *MockSender) SendSMS(ctx context.Context, phone, message string) (string, error) {
	return s.deliver(ctx, phone)
}

func (s *MockSender) SendEmail(ctx context.Context, to, subject, message string) (string, error) {
	return s.deliver(ctx, to)
}
