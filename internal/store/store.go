package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

// Collection layout:
//
//	users/{uid}                           profile document
//	users/{uid}/watchlist/{movieId}
//	users/{uid}/watched/{movieId}
//	users/{uid}/usercomment/{movieId}
//	comments/{movieId}/comment/{uid}
//
// Every write is a full-document set at a deterministic path, so repeating
// an operation is idempotent.
const (
	colUsers        = "users"
	colWatchlist    = "watchlist"
	colWatched      = "watched"
	colUserComments = "usercomment"
	colComments     = "comments"
	colComment      = "comment"
)

// Repository aggregates the per-collection repos over one Firestore client.
type Repository struct {
	db *firestore.Client

	Users     *UsersRepo
	Watchlist *WatchlistRepo
	Watched   *WatchedRepo
	Comments  *CommentsRepo
}

func New(db *firestore.Client) *Repository {
	r := &Repository{db: db}
	r.Users = &UsersRepo{db: db}
	r.Watchlist = &WatchlistRepo{db: db}
	r.Watched = &WatchedRepo{db: db}
	r.Comments = &CommentsRepo{db: db}
	return r
}

// Connect opens the Firestore client of an initialized Firebase app.
func Connect(ctx context.Context, app *firebase.App) (*Repository, error) {
	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}
	return New(db), nil
}

func (r *Repository) Close() error { return r.db.Close() }
