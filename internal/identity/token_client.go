package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"movielog/pkg/apperr"
)

// tokenClient talks to the hosted identity service's password-verification
// endpoint. The Admin SDK cannot verify passwords, so sign-in and
// re-authentication go through this REST surface, keyed by the web API key.
type tokenClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newTokenClient(apiKey string) *tokenClient {
	return &tokenClient{
		apiKey:  apiKey,
		baseURL: "https://identitytoolkit.googleapis.com/v1",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type passwordSignInResp struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

// signInWithPassword verifies email+password and returns the account uid.
func (t *tokenClient) signInWithPassword(ctx context.Context, email, password string) (passwordSignInResp, error) {
	var out passwordSignInResp
	if t.apiKey == "" {
		return out, apperr.Precondition("missing identity web API key")
	}
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return out, err
	}
	u := t.baseURL + "/accounts:signInWithPassword?key=" + t.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return out, apperr.Remote("building sign-in request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return out, apperr.Remote("identity service unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		// Wrong password, unknown user and disabled accounts all land here.
		return out, apperr.Unauthenticated("invalid email or password", fmt.Errorf("identity status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return out, apperr.Remote("identity sign-in failed", fmt.Errorf("identity status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, apperr.Remote("decoding sign-in response failed", err)
	}
	return out, nil
}
