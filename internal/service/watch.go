package service

import (
	"context"
	"strconv"

	"movielog/internal/model"
	"movielog/pkg/tmdb"
)

// AddToWatchlist stores a marker entry for the movie under the current user.
// Re-adding an already listed movie rewrites identical data.
func (s *Service) AddToWatchlist(ctx context.Context, m tmdb.Movie) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	return s.watchlist.Upsert(ctx, sess.UID, model.WatchlistEntry{
		MovieID:   strconv.Itoa(m.ID),
		IsAdded:   true,
		MovieName: m.Title,
		ImagePath: m.PosterPath,
	})
}

func (s *Service) RemoveFromWatchlist(ctx context.Context, movieID int) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	return s.watchlist.Delete(ctx, sess.UID, strconv.Itoa(movieID))
}

// Watchlist reshapes the stored entries back into catalog-shaped movies for
// display. Only id, title and poster survive the round-trip.
func (s *Service) Watchlist(ctx context.Context) ([]tmdb.Movie, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	entries, err := s.watchlist.List(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	movies := make([]tmdb.Movie, 0, len(entries))
	for _, e := range entries {
		id, _ := strconv.Atoi(e.MovieID)
		movies = append(movies, tmdb.Movie{
			ID:         id,
			Title:      e.MovieName,
			PosterPath: e.ImagePath,
		})
	}
	return movies, nil
}

// AddToWatched stores the movie with the user's rating (0-5).
func (s *Service) AddToWatched(ctx context.Context, m tmdb.Movie, rating float64) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	return s.watched.Upsert(ctx, sess.UID, model.WatchedEntry{
		MovieID:   strconv.Itoa(m.ID),
		IsAdded:   true,
		MovieName: m.Title,
		ImagePath: m.PosterPath,
		Rating:    rating,
	})
}

func (s *Service) RemoveFromWatched(ctx context.Context, movieID int) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	return s.watched.Delete(ctx, sess.UID, strconv.Itoa(movieID))
}

// WatchedMovies reshapes watched entries for display, carrying the personal
// rating in the vote average slot the screens already render.
func (s *Service) WatchedMovies(ctx context.Context) ([]tmdb.Movie, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	entries, err := s.watched.List(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	movies := make([]tmdb.Movie, 0, len(entries))
	for _, e := range entries {
		id, _ := strconv.Atoi(e.MovieID)
		movies = append(movies, tmdb.Movie{
			ID:          id,
			Title:       e.MovieName,
			PosterPath:  e.ImagePath,
			VoteAverage: e.Rating,
		})
	}
	return movies, nil
}
