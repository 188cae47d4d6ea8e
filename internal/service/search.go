package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"movielog/pkg/localstore"
	"movielog/pkg/tmdb"
)

// DefaultSearchDebounce is the quiet period after the last keystroke before
// a remote search fires.
const DefaultSearchDebounce = 500 * time.Millisecond

// minQueryLen gates remote searches; shorter input never leaves the device.
const minQueryLen = 2

// Catalog is the slice of the movie catalog the search controller uses.
type Catalog interface {
	SearchPage(ctx context.Context, query string, page int) (tmdb.SearchPage, error)
}

// SearchUpdate is delivered to the apply callback for every settled search.
// Cleared marks an empty-input reset; no remote call happened for it.
type SearchUpdate struct {
	Query   string
	Page    tmdb.SearchPage
	Err     error
	Cleared bool
}

// SearchController debounces search-as-you-type input and tags every remote
// call with a generation number. A response whose generation is no longer
// current is discarded, so the update applied always matches the latest
// settled query even when responses arrive out of order.
type SearchController struct {
	catalog Catalog
	prefs   *localstore.Prefs
	apply   func(SearchUpdate)
	wait    time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewSearchController wires the controller. apply may be called from a
// background goroutine once a search settles; it runs with the controller's
// internal lock held and must not call back into the controller.
func NewSearchController(catalog Catalog, prefs *localstore.Prefs, apply func(SearchUpdate)) *SearchController {
	return &SearchController{
		catalog: catalog,
		prefs:   prefs,
		apply:   apply,
		wait:    DefaultSearchDebounce,
	}
}

// SetDebounce overrides the quiet period. Zero fires immediately on settle.
func (c *SearchController) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.wait = d
	c.mu.Unlock()
}

// QueryChanged feeds one keystroke's worth of input. Empty input cancels any
// pending search and clears results without a remote call; input shorter
// than the minimum cancels pending work and does nothing else.
func (c *SearchController) QueryChanged(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	c.stopTimerLocked()
	c.gen++ // invalidate anything in flight

	if text == "" {
		c.apply(SearchUpdate{Cleared: true})
		c.mu.Unlock()
		return
	}
	if utf8.RuneCountInString(text) < minQueryLen {
		c.mu.Unlock()
		return
	}

	myGen := c.gen
	c.timer = time.AfterFunc(c.wait, func() {
		c.run(ctx, text, myGen)
	})
	c.mu.Unlock()
}

// SearchNow performs an immediate search, bypassing the debounce. Used for
// explicit submits and history taps.
func (c *SearchController) SearchNow(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minQueryLen {
		return
	}
	c.mu.Lock()
	c.stopTimerLocked()
	c.gen++
	myGen := c.gen
	c.mu.Unlock()

	c.run(ctx, text, myGen)
}

// LoadPage fetches a further page for presentation-driven pagination. The
// caller concatenates results client-side.
func (c *SearchController) LoadPage(ctx context.Context, query string, page int) (tmdb.SearchPage, error) {
	return c.catalog.SearchPage(ctx, query, page)
}

// History returns recent queries, most recent first.
func (c *SearchController) History(ctx context.Context) []string {
	return c.prefs.SearchHistory(ctx)
}

func (c *SearchController) ClearHistory(ctx context.Context) error {
	return c.prefs.ClearSearchHistory(ctx)
}

// Close cancels any pending debounce.
func (c *SearchController) Close() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.gen++
	c.mu.Unlock()
}

func (c *SearchController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *SearchController) run(ctx context.Context, query string, myGen uint64) {
	page, err := c.catalog.SearchPage(ctx, query, 1)

	// Staleness check and delivery happen under one lock, so a superseded
	// response can never land after its successor.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != myGen {
		return
	}
	if err == nil {
		if herr := c.prefs.RecordSearch(ctx, query); herr != nil {
			log.Warn().Err(herr).Msg("recording search history failed")
		}
	}
	c.apply(SearchUpdate{Query: query, Page: page, Err: err})
}
