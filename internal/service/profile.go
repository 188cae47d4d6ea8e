package service

import (
	"context"
	"io"

	"movielog/internal/model"
)

// Profile fetches the current user's profile document.
func (s *Service) Profile(ctx context.Context) (model.User, error) {
	sess, err := s.requireSession()
	if err != nil {
		return model.User{}, err
	}
	return s.profiles.GetProfile(ctx, sess.UID)
}

// UpdateProfilePhoto uploads the image, patches the profile document and
// refreshes the live session's photo, returning the stable download URL.
func (s *Service) UpdateProfilePhoto(ctx context.Context, r io.Reader, contentType string) (string, error) {
	sess, err := s.requireSession()
	if err != nil {
		return "", err
	}
	url, err := s.uploader.UploadProfilePhoto(ctx, sess.UID, r, contentType)
	if err != nil {
		return "", err
	}
	if s.photoRefresh != nil {
		s.photoRefresh.SetSessionPhoto(url)
	}
	return url, nil
}

// RememberedEmail returns the locally saved login email, if any.
func (s *Service) RememberedEmail(ctx context.Context) (string, bool) {
	return s.prefs.SavedEmail(ctx)
}

func (s *Service) RememberEmail(ctx context.Context, email string) error {
	return s.prefs.RememberEmail(ctx, email)
}

func (s *Service) ForgetEmail(ctx context.Context) error {
	return s.prefs.ForgetEmail(ctx)
}
