package localstore

import (
	"context"
	"encoding/json"
	"strings"
)

const (
	keySavedEmail    = "savedEmail"
	keySearchHistory = "searchHistory"

	// maxSearchHistory bounds the recent-queries list.
	maxSearchHistory = 10
)

// Prefs exposes the two pieces of client-local persisted state: the
// remembered login email and the recent search queries.
type Prefs struct {
	store Store
}

func NewPrefs(store Store) *Prefs { return &Prefs{store: store} }

// SavedEmail returns the remembered login email, if any.
func (p *Prefs) SavedEmail(ctx context.Context) (string, bool) {
	raw, ok := p.store.Get(ctx, keySavedEmail)
	if !ok {
		return "", false
	}
	var email string
	if err := json.Unmarshal([]byte(raw), &email); err != nil || email == "" {
		return "", false
	}
	return email, true
}

func (p *Prefs) RememberEmail(ctx context.Context, email string) error {
	b, err := json.Marshal(email)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, keySavedEmail, string(b))
}

func (p *Prefs) ForgetEmail(ctx context.Context) error {
	return p.store.Delete(ctx, keySavedEmail)
}

// SearchHistory returns recent queries, most recent first.
func (p *Prefs) SearchHistory(ctx context.Context) []string {
	raw, ok := p.store.Get(ctx, keySearchHistory)
	if !ok {
		return nil
	}
	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil
	}
	return history
}

// RecordSearch front-inserts query into the history, dropping any existing
// entry that matches case-insensitively and truncating to the cap.
func (p *Prefs) RecordSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	history := p.SearchHistory(ctx)
	kept := history[:0]
	for _, h := range history {
		if !strings.EqualFold(h, query) {
			kept = append(kept, h)
		}
	}
	history = append([]string{query}, kept...)
	if len(history) > maxSearchHistory {
		history = history[:maxSearchHistory]
	}
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, keySearchHistory, string(b))
}

func (p *Prefs) ClearSearchHistory(ctx context.Context) error {
	return p.store.Delete(ctx, keySearchHistory)
}
