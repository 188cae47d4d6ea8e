package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

type UsersRepo struct {
	db *firestore.Client
}

// CreateProfile writes the users/{uid} profile document.
func (r *UsersRepo) CreateProfile(ctx context.Context, u model.User) error {
	if u.UID == "" {
		return apperr.Precondition("profile requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(u.UID).Set(ctx, u)
	if err != nil {
		return apperr.Remote("writing profile document failed", err)
	}
	return nil
}

// GetProfile reads the users/{uid} profile document.
func (r *UsersRepo) GetProfile(ctx context.Context, uid string) (model.User, error) {
	if uid == "" {
		return model.User{}, apperr.Precondition("profile requires a uid")
	}
	doc, err := r.db.Collection(colUsers).Doc(uid).Get(ctx)
	if err != nil {
		return model.User{}, apperr.NotFound("profile not found", err)
	}
	var u model.User
	if err := doc.DataTo(&u); err != nil {
		return model.User{}, apperr.Remote("decoding profile document failed", err)
	}
	return u, nil
}

// UpdateProfilePhoto patches just the profilePhoto field.
func (r *UsersRepo) UpdateProfilePhoto(ctx context.Context, uid, photoURL string) error {
	if uid == "" {
		return apperr.Precondition("profile requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "profilePhoto", Value: photoURL},
	})
	if err != nil {
		return apperr.Remote("updating profile photo failed", err)
	}
	return nil
}

// UpdateUsername patches just the username field.
func (r *UsersRepo) UpdateUsername(ctx context.Context, uid, username string) error {
	if uid == "" {
		return apperr.Precondition("profile requires a uid")
	}
	_, err := r.db.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "username", Value: username},
	})
	if err != nil {
		return apperr.Remote("updating username failed", err)
	}
	return nil
}

// DeleteProfile removes the profile document. The caller is responsible for
// having deleted the account first.
func (r *UsersRepo) DeleteProfile(ctx context.Context, uid string) error {
	if uid == "" {
		return apperr.Precondition("profile requires a uid")
	}
	if _, err := r.db.Collection(colUsers).Doc(uid).Delete(ctx); err != nil {
		return apperr.Remote("deleting profile document failed", err)
	}
	return nil
}

// collectAll materializes an entire collection into decoded documents.
func collectAll[T any](iter *firestore.DocumentIterator) ([]T, error) {
	var out []T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Remote("iterating collection failed", err)
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, apperr.Remote("decoding document failed", err)
		}
		out = append(out, v)
	}
	return out, nil
}
