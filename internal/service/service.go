package service

import (
	"context"
	"io"

	"movielog/internal/identity"
	"movielog/internal/model"
	"movielog/internal/store"
	"movielog/pkg/apperr"
	"movielog/pkg/localstore"
)

// SessionSource is the read side of the session holder. The service never
// writes sessions; only the identity provider does.
type SessionSource interface {
	Current() (identity.Session, bool)
}

type WatchlistStore interface {
	Upsert(ctx context.Context, uid string, e model.WatchlistEntry) error
	Delete(ctx context.Context, uid, movieID string) error
	List(ctx context.Context, uid string) ([]model.WatchlistEntry, error)
}

type WatchedStore interface {
	Upsert(ctx context.Context, uid string, e model.WatchedEntry) error
	Delete(ctx context.Context, uid, movieID string) error
	List(ctx context.Context, uid string) ([]model.WatchedEntry, error)
}

type CommentStore interface {
	UpsertMovieComment(ctx context.Context, movieID string, c model.Comment) error
	UpsertUserComment(ctx context.Context, uid, movieID string, c model.UserComment) error
	DeleteMovieComment(ctx context.Context, movieID, uid string) error
	DeleteUserComment(ctx context.Context, uid, movieID string) error
	ListMovieComments(ctx context.Context, movieID string) ([]model.Comment, error)
	ListUserComments(ctx context.Context, uid string) ([]model.UserComment, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, uid string) (model.User, error)
}

type PhotoUploader interface {
	UploadProfilePhoto(ctx context.Context, uid string, r io.Reader, contentType string) (string, error)
}

// SessionPhotoRefresher hands a freshly uploaded photo URL back to the
// identity layer, which owns session writes.
type SessionPhotoRefresher interface {
	SetSessionPhoto(url string)
}

// Service translates between the movie-domain vocabulary of the screens and
// the storage schema, always scoping writes with the current session's uid.
type Service struct {
	sessions     SessionSource
	watchlist    WatchlistStore
	watched      WatchedStore
	comments     CommentStore
	profiles     ProfileStore
	uploader     PhotoUploader
	photoRefresh SessionPhotoRefresher
	prefs        *localstore.Prefs
}

func New(sessions SessionSource, watchlist WatchlistStore, watched WatchedStore, comments CommentStore, profiles ProfileStore, uploader PhotoUploader, photoRefresh SessionPhotoRefresher, prefs *localstore.Prefs) *Service {
	return &Service{
		sessions:     sessions,
		watchlist:    watchlist,
		watched:      watched,
		comments:     comments,
		profiles:     profiles,
		uploader:     uploader,
		photoRefresh: photoRefresh,
		prefs:        prefs,
	}
}

// NewFromRepository wires the service over the Firestore-backed repos.
func NewFromRepository(sessions SessionSource, photoRefresh SessionPhotoRefresher, repo *store.Repository, uploader PhotoUploader, prefs *localstore.Prefs) *Service {
	return New(sessions, repo.Watchlist, repo.Watched, repo.Comments, repo.Users, uploader, photoRefresh, prefs)
}

// requireSession is the precondition gate for every per-user operation.
func (s *Service) requireSession() (identity.Session, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return identity.Session{}, apperr.Precondition("no active session")
	}
	return sess, nil
}
