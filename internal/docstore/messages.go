package docstore

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/sangkips/flight-notify-service/internal/domains/messages"
)

type MessageRepository struct {
	client *firestore.Client
}

func NewMessageRepository(client *firestore.Client) *MessageRepository {
	return &MessageRepository{client: client}
}

var _ messages.Repository = (*MessageRepository)(nil)

func (r *MessageRepository) col() *firestore.CollectionRef {
	return r.client.Collection(messagesCollection)
}

func messageFromSnapshot(snap *firestore.DocumentSnapshot) (messages.SentMessage, error) {
	var m messages.SentMessage
	if err := snap.DataTo(&m); err != nil {
		return messages.SentMessage{}, err
	}
	m.ID = snap.Ref.ID
	if m.Errors == nil {
		m.Errors = []string{}
	}
	return m, nil
}

// CreateMessage is idempotent on the message id, so replaying a pending
// entry that already landed is harmless.
func (r *MessageRepository) CreateMessage(ctx context.Context, m messages.SentMessage) error {
	if _, err := r.col().Doc(m.ID).Create(ctx, m); err != nil && !isAlreadyExists(err) {
		return err
	}
	return nil
}

func (r *MessageRepository) GetMessage(ctx context.Context, id string) (messages.SentMessage, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return messages.SentMessage{}, messages.ErrMessageNotFound
		}
		return messages.SentMessage{}, err
	}
	return messageFromSnapshot(snap)
}

func (r *MessageRepository) ListMessages(ctx context.Context, limit int) ([]messages.SentMessage, error) {
	snaps, err := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	list := make([]messages.SentMessage, 0, len(snaps))
	for _, snap := range snaps {
		m, err := messageFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, nil
}
