package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

type WatchedRepo struct {
	db *firestore.Client
}

// Upsert writes the entry at users/{uid}/watched/{movieId}.
func (r *WatchedRepo) Upsert(ctx context.Context, uid string, e model.WatchedEntry) error {
	if uid == "" {
		return apperr.Precondition("watched write requires a uid")
	}
	if e.MovieID == "" {
		return apperr.Validation("watched entry requires a movie id")
	}
	if e.Rating < 0 || e.Rating > 5 {
		return apperr.Validation("rating must be between 0 and 5")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colWatched).Doc(e.MovieID).Set(ctx, e)
	if err != nil {
		return apperr.Remote("writing watched entry failed", err)
	}
	return nil
}

func (r *WatchedRepo) Delete(ctx context.Context, uid, movieID string) error {
	if uid == "" {
		return apperr.Precondition("watched delete requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colWatched).Doc(movieID).Delete(ctx)
	if err != nil {
		return apperr.Remote("deleting watched entry failed", err)
	}
	return nil
}

func (r *WatchedRepo) List(ctx context.Context, uid string) ([]model.WatchedEntry, error) {
	if uid == "" {
		return nil, apperr.Precondition("watched read requires a uid")
	}
	iter := r.db.Collection(colUsers).Doc(uid).Collection(colWatched).Documents(ctx)
	defer iter.Stop()
	return collectAll[model.WatchedEntry](iter)
}
