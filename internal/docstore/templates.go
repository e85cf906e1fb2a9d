package docstore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/sangkips/flight-notify-service/internal/domains/templates"
)

type TemplateRepository struct {
	client *firestore.Client
}

func NewTemplateRepository(client *firestore.Client) *TemplateRepository {
	return &TemplateRepository{client: client}
}

var _ templates.Repository = (*TemplateRepository)(nil)

func (r *TemplateRepository) col() *firestore.CollectionRef {
	return r.client.Collection(templatesCollection)
}

func templateFromSnapshot(snap *firestore.DocumentSnapshot) (templates.Template, error) {
	var t templates.Template
	if err := snap.DataTo(&t); err != nil {
		return templates.Template{}, err
	}
	t.ID = snap.Ref.ID
	return t, nil
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, t templates.Template) (templates.Template, error) {
	if _, err := r.col().Doc(t.ID).Create(ctx, t); err != nil {
		return templates.Template{}, err
	}
	return t, nil
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, id string) (templates.Template, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return templates.Template{}, templates.ErrTemplateNotFound
		}
		return templates.Template{}, err
	}
	return templateFromSnapshot(snap)
}

// ListTemplates returns templates by name. Sorting happens here so the
// active filter needs no composite index.
func (r *TemplateRepository) ListTemplates(ctx context.Context, activeOnly bool) ([]templates.Template, error) {
	q := r.col().Query
	if activeOnly {
		q = q.Where("isActive", "==", true)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	list := make([]templates.Template, 0, len(snaps))
	for _, snap := range snaps {
		t, err := templateFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *TemplateRepository) UpdateTemplate(ctx context.Context, t templates.Template) (templates.Template, error) {
	if err := replaceExisting(ctx, r.client, r.col().Doc(t.ID), t); err != nil {
		if isNotFound(err) {
			return templates.Template{}, templates.ErrTemplateNotFound
		}
		return templates.Template{}, err
	}
	return t, nil
}

func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return templates.ErrTemplateNotFound
		}
		return err
	}
	return nil
}
