package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

type WatchlistRepo struct {
	db *firestore.Client
}

// Upsert writes the entry at users/{uid}/watchlist/{movieId}, overwriting any
// previous document.
func (r *WatchlistRepo) Upsert(ctx context.Context, uid string, e model.WatchlistEntry) error {
	if uid == "" {
		return apperr.Precondition("watchlist write requires a uid")
	}
	if e.MovieID == "" {
		return apperr.Validation("watchlist entry requires a movie id")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colWatchlist).Doc(e.MovieID).Set(ctx, e)
	if err != nil {
		return apperr.Remote("writing watchlist entry failed", err)
	}
	return nil
}

// Delete removes the entry; deleting a missing entry is a no-op.
func (r *WatchlistRepo) Delete(ctx context.Context, uid, movieID string) error {
	if uid == "" {
		return apperr.Precondition("watchlist delete requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colWatchlist).Doc(movieID).Delete(ctx)
	if err != nil {
		return apperr.Remote("deleting watchlist entry failed", err)
	}
	return nil
}

// List materializes the whole watchlist. List sizes are bounded by personal
// usage, so no pagination.
func (r *WatchlistRepo) List(ctx context.Context, uid string) ([]model.WatchlistEntry, error) {
	if uid == "" {
		return nil, apperr.Precondition("watchlist read requires a uid")
	}
	iter := r.db.Collection(colUsers).Doc(uid).Collection(colWatchlist).Documents(ctx)
	defer iter.Stop()
	return collectAll[model.WatchlistEntry](iter)
}
