package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"

	"movielog/internal/model"
	"movielog/pkg/apperr"
)

type fakeAdmin struct {
	nextUID     string
	createCalls int
	updateCalls int
	deleteCalls int
	deletedUID  string
	getUserRec  *auth.UserRecord
	err         error
}

func (f *fakeAdmin) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: f.nextUID}}, nil
}

func (f *fakeAdmin) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.updateCalls++
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}, nil
}

func (f *fakeAdmin) DeleteUser(_ context.Context, uid string) error {
	f.deleteCalls++
	f.deletedUID = uid
	return nil
}

func (f *fakeAdmin) GetUser(_ context.Context, uid string) (*auth.UserRecord, error) {
	if f.getUserRec != nil {
		return f.getUserRec, nil
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}, nil
}

type fakeProfiles struct {
	created map[string]model.User
	deleted []string
	renamed map[string]string
	err     error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{created: make(map[string]model.User), renamed: make(map[string]string)}
}

func (f *fakeProfiles) CreateProfile(_ context.Context, u model.User) error {
	if f.err != nil {
		return f.err
	}
	f.created[u.UID] = u
	return nil
}

func (f *fakeProfiles) DeleteProfile(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeProfiles) UpdateUsername(_ context.Context, uid, username string) error {
	f.renamed[uid] = username
	return nil
}

// tokenServer fakes the password-verification endpoint. status 200 answers
// with the given uid; anything else is returned as-is.
func tokenServer(t *testing.T, status int, uid, email, displayName string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "web-key" {
			t.Fatalf("expected web API key, got %q", r.URL.Query().Get("key"))
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"localId":"` + uid + `","email":"` + email + `","displayName":"` + displayName + `","idToken":"tok"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(admin accountAdmin, profiles ProfileStore, tokens *httptest.Server) *Provider {
	p := &Provider{
		admin:    admin,
		tokens:   &tokenClient{apiKey: "web-key", client: &http.Client{Timeout: time.Second}},
		profiles: profiles,
		holder:   NewHolder(),
	}
	if tokens != nil {
		p.tokens.baseURL = tokens.URL
	}
	return p
}

func TestSignUpRequiresAllFields(t *testing.T) {
	p := newTestProvider(&fakeAdmin{}, newFakeProfiles(), nil)
	err := p.SignUp(context.Background(), "a@b.c", "", "sam")
	if !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestSignUpProvisionsProfile(t *testing.T) {
	admin := &fakeAdmin{nextUID: "user-1"}
	profiles := newFakeProfiles()
	p := newTestProvider(admin, profiles, nil)

	if err := p.SignUp(context.Background(), "sam@example.com", "hunter22", "sam"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	u, ok := profiles.created["user-1"]
	if !ok {
		t.Fatal("expected profile document for created uid")
	}
	if u.Username != "sam" || u.Email != "sam@example.com" {
		t.Fatalf("unexpected profile %+v", u)
	}
	if u.ProfilePhoto != DefaultProfilePhotoURL {
		t.Fatalf("expected default photo, got %q", u.ProfilePhoto)
	}
	if admin.createCalls != 1 || admin.updateCalls != 1 {
		t.Fatalf("expected create+display-name calls, got %d/%d", admin.createCalls, admin.updateCalls)
	}
}

func TestSignUpSurfacesProfileFailureWithoutRollback(t *testing.T) {
	admin := &fakeAdmin{nextUID: "user-1"}
	profiles := newFakeProfiles()
	profiles.err = apperr.Remote("firestore down", nil)
	p := newTestProvider(admin, profiles, nil)

	err := p.SignUp(context.Background(), "sam@example.com", "hunter22", "sam")
	if !apperr.Is(err, apperr.CodeRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	// The account created in step one stays; there is no compensation.
	if admin.createCalls != 1 || admin.deleteCalls != 0 {
		t.Fatalf("expected no rollback, got create=%d delete=%d", admin.createCalls, admin.deleteCalls)
	}
}

func TestSignInPublishesSession(t *testing.T) {
	admin := &fakeAdmin{getUserRec: &auth.UserRecord{
		UserInfo: &auth.UserInfo{UID: "user-1", DisplayName: "sam", PhotoURL: "https://x/p.jpg"},
	}}
	srv := tokenServer(t, http.StatusOK, "user-1", "sam@example.com", "sam")
	p := newTestProvider(admin, newFakeProfiles(), srv)

	var notified []*Session
	p.Subscribe(func(s *Session) { notified = append(notified, s) })

	s, err := p.SignIn(context.Background(), "sam@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.UID != "user-1" || s.Username != "sam" || s.PhotoURL != "https://x/p.jpg" {
		t.Fatalf("unexpected session %+v", s)
	}
	cur, ok := p.Sessions().Current()
	if !ok || cur.UID != "user-1" {
		t.Fatalf("expected current session, got %+v ok=%v", cur, ok)
	}
	if len(notified) != 2 || notified[1] == nil {
		t.Fatalf("expected subscriber notification, got %v", notified)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	srv := tokenServer(t, http.StatusBadRequest, "", "", "")
	p := newTestProvider(&fakeAdmin{}, newFakeProfiles(), srv)

	_, err := p.SignIn(context.Background(), "sam@example.com", "wrong")
	if !apperr.Is(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, ok := p.Sessions().Current(); ok {
		t.Fatal("expected no session after failed sign-in")
	}
}

func TestSignOutClearsSession(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, "user-1", "sam@example.com", "sam")
	p := newTestProvider(&fakeAdmin{}, newFakeProfiles(), srv)

	if _, err := p.SignIn(context.Background(), "sam@example.com", "hunter22"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	p.SignOut()
	if _, ok := p.Sessions().Current(); ok {
		t.Fatal("expected session cleared")
	}
}

func TestDeleteAccountRequiresSession(t *testing.T) {
	p := newTestProvider(&fakeAdmin{}, newFakeProfiles(), nil)
	err := p.DeleteAccount(context.Background(), "hunter22")
	if !apperr.Is(err, apperr.CodePrecondition) {
		t.Fatalf("expected precondition failure, got %v", err)
	}
}

func TestDeleteAccountReauthenticatesThenDeletes(t *testing.T) {
	admin := &fakeAdmin{}
	profiles := newFakeProfiles()
	srv := tokenServer(t, http.StatusOK, "user-1", "sam@example.com", "sam")
	p := newTestProvider(admin, profiles, srv)

	if _, err := p.SignIn(context.Background(), "sam@example.com", "hunter22"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := p.DeleteAccount(context.Background(), "hunter22"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if admin.deletedUID != "user-1" {
		t.Fatalf("expected account delete for user-1, got %q", admin.deletedUID)
	}
	if len(profiles.deleted) != 1 || profiles.deleted[0] != "user-1" {
		t.Fatalf("expected profile delete, got %v", profiles.deleted)
	}
	if _, ok := p.Sessions().Current(); ok {
		t.Fatal("expected session cleared after deletion")
	}
}

func TestUpdateUsernameTouchesAccountAndProfile(t *testing.T) {
	admin := &fakeAdmin{}
	profiles := newFakeProfiles()
	srv := tokenServer(t, http.StatusOK, "user-1", "sam@example.com", "sam")
	p := newTestProvider(admin, profiles, srv)

	if _, err := p.SignIn(context.Background(), "sam@example.com", "hunter22"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := p.UpdateUsername(context.Background(), "samwise"); err != nil {
		t.Fatalf("update username: %v", err)
	}
	if profiles.renamed["user-1"] != "samwise" {
		t.Fatalf("expected profile rename, got %v", profiles.renamed)
	}
	cur, _ := p.Sessions().Current()
	if cur.Username != "samwise" {
		t.Fatalf("expected session username refreshed, got %q", cur.Username)
	}
}

func TestSignUpEstablishesSession(t *testing.T) {
	admin := &fakeAdmin{nextUID: "user-1"}
	profiles := newFakeProfiles()
	p := newTestProvider(admin, profiles, nil)

	if err := p.SignUp(context.Background(), "sam@example.com", "hunter22", "sam"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	cur, ok := p.Sessions().Current()
	if !ok {
		t.Fatal("expected an active session after successful sign-up")
	}
	u, found := profiles.created[cur.UID]
	if !found || u.UID != cur.UID {
		t.Fatalf("session uid %q does not match a created profile document", cur.UID)
	}
	if cur.Username != "sam" || cur.Email != "sam@example.com" {
		t.Fatalf("unexpected session %+v", cur)
	}
	if cur.PhotoURL != DefaultProfilePhotoURL {
		t.Fatalf("expected default photo on fresh session, got %q", cur.PhotoURL)
	}
}

func TestFailedSignUpEstablishesNoSession(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.err = apperr.Remote("firestore down", nil)
	p := newTestProvider(&fakeAdmin{nextUID: "user-1"}, profiles, nil)

	if err := p.SignUp(context.Background(), "sam@example.com", "hunter22", "sam"); err == nil {
		t.Fatal("expected sign-up failure")
	}
	if _, ok := p.Sessions().Current(); ok {
		t.Fatal("expected no session after failed sign-up")
	}
}

func TestSetSessionPhotoRefreshesSession(t *testing.T) {
	p := newTestProvider(&fakeAdmin{}, newFakeProfiles(), nil)

	// Without a session the call is a no-op.
	p.SetSessionPhoto("https://x/new.jpg")
	if _, ok := p.Sessions().Current(); ok {
		t.Fatal("expected no session to appear")
	}

	p.holder.set(&Session{UID: "user-1", Username: "sam"})
	p.SetSessionPhoto("https://x/new.jpg")
	cur, _ := p.Sessions().Current()
	if cur.PhotoURL != "https://x/new.jpg" {
		t.Fatalf("expected refreshed photo, got %q", cur.PhotoURL)
	}
	if cur.UID != "user-1" || cur.Username != "sam" {
		t.Fatalf("expected rest of session untouched, got %+v", cur)
	}
}

func TestUpdateEmailRejectsFailedReauthentication(t *testing.T) {
	admin := &fakeAdmin{}
	srv := tokenServer(t, http.StatusBadRequest, "", "", "")
	p := newTestProvider(admin, newFakeProfiles(), srv)
	p.holder.set(&Session{UID: "user-1", Email: "sam@example.com"})

	err := p.UpdateEmail(context.Background(), "wrong", "new@example.com")
	if !apperr.Is(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if admin.updateCalls != 0 {
		t.Fatalf("expected no account mutation, got %d update calls", admin.updateCalls)
	}
	cur, _ := p.Sessions().Current()
	if cur.Email != "sam@example.com" {
		t.Fatalf("expected session email untouched, got %q", cur.Email)
	}
}

func TestUpdateEmailReauthenticatesThenUpdates(t *testing.T) {
	admin := &fakeAdmin{}
	srv := tokenServer(t, http.StatusOK, "user-1", "sam@example.com", "sam")
	p := newTestProvider(admin, newFakeProfiles(), srv)
	p.holder.set(&Session{UID: "user-1", Email: "sam@example.com"})

	if err := p.UpdateEmail(context.Background(), "hunter22", "new@example.com"); err != nil {
		t.Fatalf("update email: %v", err)
	}
	if admin.updateCalls != 1 {
		t.Fatalf("expected one account update, got %d", admin.updateCalls)
	}
	cur, _ := p.Sessions().Current()
	if cur.Email != "new@example.com" {
		t.Fatalf("expected session email refreshed, got %q", cur.Email)
	}
}

func TestUpdatePasswordRejectsFailedReauthentication(t *testing.T) {
	admin := &fakeAdmin{}
	srv := tokenServer(t, http.StatusBadRequest, "", "", "")
	p := newTestProvider(admin, newFakeProfiles(), srv)
	p.holder.set(&Session{UID: "user-1", Email: "sam@example.com"})

	err := p.UpdatePassword(context.Background(), "wrong", "newpass42")
	if !apperr.Is(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if admin.updateCalls != 0 {
		t.Fatalf("expected no account mutation, got %d update calls", admin.updateCalls)
	}
}
