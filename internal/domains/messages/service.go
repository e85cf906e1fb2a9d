package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/cache"
)

const (
	snapshotKey  = "messages"
	pendingQueue = "messages"
)

// Service is the two-tier history store. Reads prefer the remote repository
// and fall back to the local snapshot only when it fails. Writes that the
// remote rejects are parked locally until Resync pushes them.
type Service struct {
	repo  Repository
	local *cache.Store
	now   func() time.Time
}

// NewService wires the history store. local may be nil, which disables both
// the read fallback and pending writes.
func NewService(repo Repository, local *cache.Store) *Service {
	return &Service{repo: repo, local: local, now: time.Now}
}

// Record stores m, filling ID and CreatedAt when unset. pending reports that
// the remote write failed and the entry was queued locally instead.
func (s *Service) Record(ctx context.Context, m SentMessage) (SentMessage, bool, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}
	if m.Errors == nil {
		m.Errors = []string{}
	}

	err := s.repo.CreateMessage(ctx, m)
	if err == nil {
		return m, false, nil
	}
	if s.local == nil {
		return SentMessage{}, false, fmt.Errorf("failed to record message: %w", err)
	}

	log.Warn().Err(err).Str("message_id", m.ID).Msg("Remote history write failed, queueing locally")
	if qerr := s.local.Enqueue(ctx, pendingQueue, m); qerr != nil {
		return SentMessage{}, false, fmt.Errorf("failed to record message: %w", errors.Join(err, qerr))
	}
	return m, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (SentMessage, error) {
	return s.repo.GetMessage(ctx, id)
}

// List returns the newest entries first.
func (s *Service) List(ctx context.Context, limit int) (ListResponse, error) {
	limit = clampLimit(limit)

	// The snapshot always holds the largest page so any limit can be served
	// from it.
	list, src, err := cache.ReadThrough(ctx, s.local, snapshotKey, func(ctx context.Context) ([]SentMessage, error) {
		return s.repo.ListMessages(ctx, MaxListLimit)
	})
	if err != nil {
		return ListResponse{}, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	if list == nil {
		list = []SentMessage{}
	}
	return ListResponse{Data: list, Source: string(src)}, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Pending reports how many entries wait for the remote store.
func (s *Service) Pending(ctx context.Context) (int64, error) {
	if s.local == nil {
		return 0, nil
	}
	return s.local.Len(ctx, pendingQueue)
}

// Resync pushes pending entries to the remote store in order and stops at
// the first failure. It returns how many entries were flushed.
func (s *Service) Resync(ctx context.Context) (int, error) {
	if s.local == nil {
		return 0, nil
	}

	flushed := 0
	for {
		if err := ctx.Err(); err != nil {
			return flushed, err
		}

		var m SentMessage
		err := s.local.Head(ctx, pendingQueue, &m)
		if errors.Is(err, cache.ErrMiss) {
			return flushed, nil
		}
		if err != nil {
			return flushed, err
		}

		if err := s.repo.CreateMessage(ctx, m); err != nil {
			return flushed, fmt.Errorf("remote still unavailable: %w", err)
		}
		if err := s.local.Dequeue(ctx, pendingQueue); err != nil && !errors.Is(err, cache.ErrMiss) {
			return flushed, err
		}
		flushed++
	}
}

// FromRequest builds a history entry attributed to sentBy.
func FromRequest(req RecordRequest, sentBy string) SentMessage {
	return SentMessage{
		TemplateID:     req.TemplateID,
		TemplateName:   strings.TrimSpace(req.TemplateName),
		FlightNumber:   strings.TrimSpace(req.FlightNumber),
		HebrewContent:  req.HebrewContent,
		EnglishContent: req.EnglishContent,
		SentBy:         sentBy,
		Recipients:     req.Recipients,
		SMSSent:        req.SMSSent,
		EmailSent:      req.EmailSent,
		Errors:         req.Errors,
	}
}
