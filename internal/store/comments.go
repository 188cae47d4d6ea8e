package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

// CommentsRepo covers both halves of the dual-write: the shared per-movie
// collection and the per-user "my comments" copy. Keeping them in sync is the
// service layer's job; this repo only offers the individual writes.
type CommentsRepo struct {
	db *firestore.Client
}

// UpsertMovieComment writes comments/{movieId}/comment/{uid}. One comment per
// user per movie; a second write from the same user overwrites the first.
func (r *CommentsRepo) UpsertMovieComment(ctx context.Context, movieID string, c model.Comment) error {
	if c.UID == "" {
		return apperr.Precondition("comment write requires a uid")
	}
	if movieID == "" {
		return apperr.Validation("comment requires a movie id")
	}
	_, err := r.db.Collection(colComments).Doc(movieID).Collection(colComment).Doc(c.UID).Set(ctx, c)
	if err != nil {
		return apperr.Remote("writing movie comment failed", err)
	}
	return nil
}

// UpsertUserComment writes users/{uid}/usercomment/{movieId}.
func (r *CommentsRepo) UpsertUserComment(ctx context.Context, uid, movieID string, c model.UserComment) error {
	if uid == "" {
		return apperr.Precondition("comment write requires a uid")
	}
	if movieID == "" {
		return apperr.Validation("comment requires a movie id")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colUserComments).Doc(movieID).Set(ctx, c)
	if err != nil {
		return apperr.Remote("writing user comment failed", err)
	}
	return nil
}

// DeleteMovieComment removes the shared copy.
func (r *CommentsRepo) DeleteMovieComment(ctx context.Context, movieID, uid string) error {
	if uid == "" {
		return apperr.Precondition("comment delete requires a uid")
	}
	_, err := r.db.Collection(colComments).Doc(movieID).Collection(colComment).Doc(uid).Delete(ctx)
	if err != nil {
		return apperr.Remote("deleting movie comment failed", err)
	}
	return nil
}

// DeleteUserComment removes the per-user copy.
func (r *CommentsRepo) DeleteUserComment(ctx context.Context, uid, movieID string) error {
	if uid == "" {
		return apperr.Precondition("comment delete requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Collection(colUserComments).Doc(movieID).Delete(ctx)
	if err != nil {
		return apperr.Remote("deleting user comment failed", err)
	}
	return nil
}

// ListMovieComments materializes every comment under a movie, in storage
// order.
func (r *CommentsRepo) ListMovieComments(ctx context.Context, movieID string) ([]model.Comment, error) {
	if movieID == "" {
		return nil, apperr.Validation("comment read requires a movie id")
	}
	iter := r.db.Collection(colComments).Doc(movieID).Collection(colComment).Documents(ctx)
	defer iter.Stop()
	return collectAll[model.Comment](iter)
}

// ListUserComments materializes the user's own comments.
func (r *CommentsRepo) ListUserComments(ctx context.Context, uid string) ([]model.UserComment, error) {
	if uid == "" {
		return nil, apperr.Precondition("comment read requires a uid")
	}
	iter := r.db.Collection(colUsers).Doc(uid).Collection(colUserComments).Documents(ctx)
	defer iter.Stop()
	return collectAll[model.UserComment](iter)
}
