package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"movielog/internal/model"
	"movielog/pkg/apperr"
	"movielog/pkg/tmdb"
)

// AddComment writes the comment to the shared per-movie collection and to the
// user's own collection, carrying denormalized movie metadata into the
// latter. The two writes are sequential and not transactional: if the second
// fails after the first succeeded the stores diverge, and the error is
// surfaced without compensation.
func (s *Service) AddComment(ctx context.Context, movie tmdb.Movie, text string, rating float64) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return apperr.Validation("comment text is required")
	}
	if rating < 0 || rating > 5 {
		return apperr.Validation("rating must be between 0 and 5")
	}

	movieID := strconv.Itoa(movie.ID)
	err = s.comments.UpsertMovieComment(ctx, movieID, model.Comment{
		Comment:    text,
		Username:   sess.Username,
		Rating:     rating,
		UID:        sess.UID,
		ProfilePic: sess.PhotoURL,
	})
	if err != nil {
		return err
	}

	err = s.comments.UpsertUserComment(ctx, sess.UID, movieID, model.UserComment{
		Comment:    text,
		Rating:     rating,
		MovieID:    movie.ID,
		MovieName:  movie.Title,
		PosterPath: movie.PosterPath,
		UID:        sess.UID,
	})
	if err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Str("movie_id", movieID).
			Msg("user-copy comment write failed after shared write succeeded")
		return err
	}
	return nil
}

// Comments returns every comment on a movie, in storage order. No session is
// required; the shared collection is readable by anyone.
func (s *Service) Comments(ctx context.Context, movieID int) ([]model.Comment, error) {
	return s.comments.ListMovieComments(ctx, strconv.Itoa(movieID))
}

// UserComments returns the current user's comments across all movies.
func (s *Service) UserComments(ctx context.Context) ([]model.UserComment, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	return s.comments.ListUserComments(ctx, sess.UID)
}

// DeleteComment mirrors the dual-write: both the user's copy and the shared
// copy are removed, sequentially, without a transaction.
func (s *Service) DeleteComment(ctx context.Context, movieID int) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	id := strconv.Itoa(movieID)
	if err := s.comments.DeleteUserComment(ctx, sess.UID, id); err != nil {
		return err
	}
	if err := s.comments.DeleteMovieComment(ctx, id, sess.UID); err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Str("movie_id", id).
			Msg("shared comment delete failed after user-copy delete succeeded")
		return err
	}
	return nil
}
