package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"movielog/pkg/apperr"
)

// Client wraps the read-only movie metadata API. All calls are GETs with the
// API key attached as a query parameter; no retries are performed.
type Client struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Client       *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:       apiKey,
		BaseURL:      "https://api.themoviedb.org/3",
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		Language:     "en-US",
		Client:       &http.Client{Timeout: 15 * time.Second},
	}
}

type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MovieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	ReleaseDate  string  `json:"release_date"`
	Genres       []Genre `json:"genres"`
	Runtime      int     `json:"runtime"`
	Status       string  `json:"status"`
	Tagline      string  `json:"tagline"`
	Budget       int64   `json:"budget"`
	Revenue      int64   `json:"revenue"`
}

type Cast struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type Recommendation struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
}

type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// SearchPage is the paginated envelope returned by the search endpoint.
type SearchPage struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type listResp struct {
	Results []Movie `json:"results"`
}

type creditsResp struct {
	Cast []Cast `json:"cast"`
}

type recommendationsResp struct {
	Results []Recommendation `json:"results"`
}

// Popular fetches one page of the popular list.
func (c *Client) Popular(ctx context.Context, page int) ([]Movie, error) {
	var out listResp
	if err := c.get(ctx, "/movie/popular", pageParams(page), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// TopRated fetches one page of the top-rated list.
func (c *Client) TopRated(ctx context.Context, page int) ([]Movie, error) {
	var out listResp
	if err := c.get(ctx, "/movie/top_rated", pageParams(page), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Details fetches the full record for a single movie.
func (c *Client) Details(ctx context.Context, movieID int) (MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &out); err != nil {
		return MovieDetails{}, err
	}
	return out, nil
}

// Credits fetches the cast list for a movie.
func (c *Client) Credits(ctx context.Context, movieID int) ([]Cast, error) {
	var out creditsResp
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &out); err != nil {
		return nil, err
	}
	return out.Cast, nil
}

// Recommendations fetches similar-movie suggestions for a movie.
func (c *Client) Recommendations(ctx context.Context, movieID int) ([]Recommendation, error) {
	var out recommendationsResp
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Search returns just the results of one search page.
func (c *Client) Search(ctx context.Context, query string, page int) ([]SearchResult, error) {
	p, err := c.SearchPage(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

// SearchPage returns the full pagination envelope for a search query.
func (c *Client) SearchPage(ctx context.Context, query string, page int) (SearchPage, error) {
	params := pageParams(page)
	params.Set("query", query)
	var out SearchPage
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return SearchPage{}, err
	}
	return out, nil
}

// ImageURL composes a full poster/backdrop URL, or returns def when the
// catalog has no image path.
func (c *Client) ImageURL(path, def string) string {
	if path == "" {
		return def
	}
	return c.ImageBaseURL + path
}

func pageParams(page int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.APIKey == "" {
		return apperr.Precondition("missing catalog API key")
	}
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return apperr.Remote("invalid catalog url", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.APIKey)
	if c.Language != "" {
		q.Set("language", c.Language)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return apperr.Remote("building catalog request failed", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return apperr.Remote("catalog fetch failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return apperr.NotFound("catalog record not found", fmt.Errorf("tmdb status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return apperr.Remote("catalog fetch failed", fmt.Errorf("tmdb status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Remote("decoding catalog response failed", err)
	}
	return nil
}
