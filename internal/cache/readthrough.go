package cache

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Source tells callers where a read was served from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// ReadThrough tries fetch first and snapshots its result. When fetch fails it
// serves the last snapshot instead; with no snapshot the fetch error is
// returned unchanged.
func ReadThrough[T any](ctx context.Context, store *Store, key string, fetch func(context.Context) (T, error)) (T, Source, error) {
	v, err := fetch(ctx)
	if err == nil {
		if store != nil {
			if serr := store.SaveSnapshot(ctx, key, v); serr != nil {
				log.Warn().Err(serr).Str("key", key).Msg("Failed to refresh local snapshot")
			}
		}
		return v, SourceRemote, nil
	}

	if store == nil {
		return v, SourceRemote, err
	}

	var cached T
	if lerr := store.LoadSnapshot(ctx, key, &cached); lerr != nil {
		if !errors.Is(lerr, ErrMiss) {
			log.Warn().Err(lerr).Str("key", key).Msg("Failed to read local snapshot")
		}
		return v, SourceRemote, err
	}

	log.Warn().Err(err).Str("key", key).Msg("Remote read failed, serving local snapshot")
	return cached, SourceCache, nil
}
