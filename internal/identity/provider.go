package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

// DefaultProfilePhotoURL is assigned to every new account until the user
// uploads their own picture.
const DefaultProfilePhotoURL = "https://soccerpointeclaire.com/wp-content/uploads/2021/06/default-profile-pic-e1513291410505.jpg"

// ProfileStore is the slice of the document store the provider needs to keep
// the users/{uid} profile document in step with the account.
type ProfileStore interface {
	CreateProfile(ctx context.Context, u model.User) error
	DeleteProfile(ctx context.Context, uid string) error
	UpdateUsername(ctx context.Context, uid, username string) error
}

// accountAdmin is the subset of the Admin SDK auth client the provider uses.
type accountAdmin interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// Provider wraps the hosted authentication service and owns the session
// holder. All account mutations that are irreversible or sensitive require a
// fresh password re-authentication first.
type Provider struct {
	admin    accountAdmin
	tokens   *tokenClient
	profiles ProfileStore
	holder   *Holder
}

func NewProvider(admin *auth.Client, webAPIKey string, profiles ProfileStore) *Provider {
	return &Provider{
		admin:    admin,
		tokens:   newTokenClient(webAPIKey),
		profiles: profiles,
		holder:   NewHolder(),
	}
}

// Sessions exposes the observable session holder.
func (p *Provider) Sessions() *Holder { return p.holder }

// Subscribe is a convenience passthrough to the holder.
func (p *Provider) Subscribe(fn func(*Session)) func() { return p.holder.Subscribe(fn) }

// SignUp creates the account, sets the display name and provisions the
// profile document, in that order, then publishes the new session. The three
// steps are not atomic; a failure partway leaves earlier steps in place, is
// surfaced to the caller and establishes no session.
func (p *Provider) SignUp(ctx context.Context, email, password, username string) error {
	if email == "" || password == "" || username == "" {
		return apperr.Validation("email, password and username are required")
	}

	params := (&auth.UserToCreate{}).Email(email).Password(password)
	rec, err := p.admin.CreateUser(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("account creation failed")
		return apperr.Remote("account creation failed", err)
	}

	if _, err := p.admin.UpdateUser(ctx, rec.UID, (&auth.UserToUpdate{}).DisplayName(username)); err != nil {
		log.Error().Err(err).Str("uid", rec.UID).Msg("setting display name failed")
		return apperr.Remote("setting display name failed", err)
	}

	if err := p.profiles.CreateProfile(ctx, model.User{
		UID:          rec.UID,
		Email:        email,
		Username:     username,
		ProfilePhoto: DefaultProfilePhotoURL,
	}); err != nil {
		log.Error().Err(err).Str("uid", rec.UID).Msg("provisioning profile document failed")
		return apperr.Remote("provisioning profile document failed", err)
	}

	p.holder.set(&Session{
		UID:      rec.UID,
		Email:    email,
		Username: username,
		PhotoURL: DefaultProfilePhotoURL,
	})
	return nil
}

// SignIn verifies the password and publishes the new session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, apperr.Validation("email and password are required")
	}
	res, err := p.tokens.signInWithPassword(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	s := Session{UID: res.LocalID, Email: res.Email, Username: res.DisplayName}
	// Best effort: enrich the session with the photo URL from the account
	// record; sign-in still succeeds without it.
	if rec, err := p.admin.GetUser(ctx, res.LocalID); err == nil {
		if rec.DisplayName != "" {
			s.Username = rec.DisplayName
		}
		s.PhotoURL = rec.PhotoURL
	} else {
		log.Warn().Err(err).Str("uid", res.LocalID).Msg("fetching account record failed")
	}

	p.holder.set(&s)
	return s, nil
}

// SignOut clears the session. Dependent reads fail their session
// precondition from this point on.
func (p *Provider) SignOut() {
	p.holder.set(nil)
}

// reauthenticate re-verifies the current user's password and returns the
// session. Required before deletes and credential changes.
func (p *Provider) reauthenticate(ctx context.Context, password string) (Session, error) {
	s, ok := p.holder.Current()
	if !ok {
		return Session{}, apperr.Precondition("no active session")
	}
	if password == "" {
		return Session{}, apperr.Validation("password is required")
	}
	if _, err := p.tokens.signInWithPassword(ctx, s.Email, password); err != nil {
		return Session{}, err
	}
	return s, nil
}

// DeleteAccount irreversibly removes the account and its profile document.
// The two deletes are sequential with no rollback.
func (p *Provider) DeleteAccount(ctx context.Context, password string) error {
	s, err := p.reauthenticate(ctx, password)
	if err != nil {
		return err
	}
	if err := p.admin.DeleteUser(ctx, s.UID); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("account deletion failed")
		return apperr.Remote("account deletion failed", err)
	}
	if err := p.profiles.DeleteProfile(ctx, s.UID); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("profile document deletion failed")
		return apperr.Remote("profile document deletion failed", err)
	}
	p.holder.set(nil)
	return nil
}

// UpdateEmail changes the sign-in email after re-authentication.
func (p *Provider) UpdateEmail(ctx context.Context, password, newEmail string) error {
	if newEmail == "" {
		return apperr.Validation("new email is required")
	}
	s, err := p.reauthenticate(ctx, password)
	if err != nil {
		return err
	}
	if _, err := p.admin.UpdateUser(ctx, s.UID, (&auth.UserToUpdate{}).Email(newEmail)); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("email update failed")
		return apperr.Remote("email update failed", err)
	}
	s.Email = newEmail
	p.holder.set(&s)
	return nil
}

// UpdatePassword changes the password after re-authentication with the old one.
func (p *Provider) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("new password is required")
	}
	s, err := p.reauthenticate(ctx, oldPassword)
	if err != nil {
		return err
	}
	if _, err := p.admin.UpdateUser(ctx, s.UID, (&auth.UserToUpdate{}).Password(newPassword)); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("password update failed")
		return apperr.Remote("password update failed", err)
	}
	return nil
}

// UpdateUsername renames the user on both the account record and the profile
// document.
func (p *Provider) UpdateUsername(ctx context.Context, username string) error {
	if username == "" {
		return apperr.Validation("username is required")
	}
	s, ok := p.holder.Current()
	if !ok {
		return apperr.Precondition("no active session")
	}
	if _, err := p.admin.UpdateUser(ctx, s.UID, (&auth.UserToUpdate{}).DisplayName(username)); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("display name update failed")
		return apperr.Remote("display name update failed", err)
	}
	if err := p.profiles.UpdateUsername(ctx, s.UID, username); err != nil {
		log.Error().Err(err).Str("uid", s.UID).Msg("profile username update failed")
		return apperr.Remote("profile username update failed", err)
	}
	s.Username = username
	p.holder.set(&s)
	return nil
}

// SetSessionPhoto updates the photo URL on the live session after an upload.
func (p *Provider) SetSessionPhoto(url string) {
	s, ok := p.holder.Current()
	if !ok {
		return
	}
	s.PhotoURL = url
	p.holder.set(&s)
}
