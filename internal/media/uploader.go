package media

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"movielog/pkg/apperr"
)

// ProfilePatcher is the slice of the document store the uploader uses to
// point the profile record at the freshly uploaded asset.
type ProfilePatcher interface {
	UpdateProfilePhoto(ctx context.Context, uid, photoURL string) error
}

// Uploader pushes profile photos into blob storage under profileImages/{uid}
// and hands the resulting download URL to the profile document. A failure at
// any stage aborts the whole chain; earlier stages are not cleaned up.
type Uploader struct {
	bucket     *storage.BucketHandle
	bucketName string
	profiles   ProfilePatcher
}

func NewUploader(ctx context.Context, app *firebase.App, bucketName string, profiles ProfilePatcher) (*Uploader, error) {
	sc, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Storage client: %w", err)
	}
	bucket, err := sc.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default bucket: %w", err)
	}
	return &Uploader{bucket: bucket, bucketName: bucketName, profiles: profiles}, nil
}

// UploadProfilePhoto streams the image into profileImages/{uid}, attaches a
// download token, updates the profile document and returns the stable URL.
func (u *Uploader) UploadProfilePhoto(ctx context.Context, uid string, r io.Reader, contentType string) (string, error) {
	if uid == "" {
		return "", apperr.Precondition("photo upload requires a uid")
	}

	objectPath := "profileImages/" + uid
	token := xid.New().String()

	w := u.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		log.Error().Err(err).Str("uid", uid).Msg("photo upload failed")
		return "", apperr.Remote("photo upload failed", err)
	}
	if err := w.Close(); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("finalizing photo upload failed")
		return "", apperr.Remote("photo upload failed", err)
	}

	downloadURL := u.downloadURL(objectPath, token)
	if err := u.profiles.UpdateProfilePhoto(ctx, uid, downloadURL); err != nil {
		return "", err
	}
	return downloadURL, nil
}

func (u *Uploader) downloadURL(objectPath, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucketName, url.PathEscape(objectPath), token,
	)
}
