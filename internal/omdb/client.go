// client.go
//
// MovieWeb, a service for keeping users and the movies they like, with OMDb lookups
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieweb.
// movieweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieweb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public OMDb endpoint
const DefaultBaseURL = "https://www.omdbapi.com/"

const maxBodyBytes = 1 << 20

var (
	// ErrNotConfigured is returned when no API key was supplied
	ErrNotConfigured = errors.New("omdb: api key not configured")

	// ErrNotFound is returned when OMDb has no title for the request
	ErrNotFound = errors.New("omdb: not found")

	imdbIDRX = regexp.MustCompile(`^tt\d{7,10}$`)
	yearRX   = regexp.MustCompile(`\d{4}`)
)

// APIError is an OMDb reply with Response "False" other than a miss
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "omdb: " + e.Message
}

// SearchResult is a single hit of a title search
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Details is the subset of an OMDb title record used for autofill.
// Raw keeps the whole reply for storage.
type Details struct {
	Title      string          `json:"Title"`
	Year       string          `json:"Year"`
	Rated      string          `json:"Rated"`
	Released   string          `json:"Released"`
	Runtime    string          `json:"Runtime"`
	Genre      string          `json:"Genre"`
	Director   string          `json:"Director"`
	Actors     string          `json:"Actors"`
	Plot       string          `json:"Plot"`
	Poster     string          `json:"Poster"`
	IMDbRating string          `json:"imdbRating"`
	IMDbID     string          `json:"imdbID"`
	Type       string          `json:"Type"`
	Raw        json.RawMessage `json:"-"`
}

// YearValue returns the first four digit year, so "2019–2022" yields 2019
func (d *Details) YearValue() (int, bool) {
	m := yearRX.FindString(d.Year)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	return y, err == nil
}

// RatingValue returns the IMDb rating; OMDb reports "N/A" when unknown
func (d *Details) RatingValue() (float64, bool) {
	r, err := strconv.ParseFloat(d.IMDbRating, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

// DirectorValue returns the director unless OMDb reports "N/A"
func (d *Details) DirectorValue() (string, bool) {
	return known(d.Director)
}

// PosterValue returns the poster URL unless OMDb reports "N/A"
func (d *Details) PosterValue() (string, bool) {
	return known(d.Poster)
}

func known(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return "", false
	}
	return s, true
}

// ValidIMDbID reports whether id looks like an IMDb title id
func ValidIMDbID(id string) bool {
	return imdbIDRX.MatchString(id)
}

// Options tune a Client. Zero values pick the defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Cache             Cache
	CacheTTL          time.Duration
	HTTPClient        *http.Client
}

// Client talks to the OMDb API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	cacheTTL   time.Duration
}

// NewClient returns an OMDb client for apiKey
func NewClient(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
	}
}

// Configured reports whether an API key is present.
// The placeholder key shipped in the default config counts as absent.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != "" && c.apiKey != "your-omdb"
}

// Search returns titles matching query. No match is an empty result, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")

	body, err := c.get(ctx, params, "search:"+strings.ToLower(query))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []SearchResult{}, nil
		}
		return nil, err
	}

	var reply struct {
		Search []SearchResult `json:"Search"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("omdb search: decode: %w", err)
	}
	if reply.Search == nil {
		reply.Search = []SearchResult{}
	}
	return reply.Search, nil
}

// Details returns the full record for an IMDb id
func (c *Client) Details(ctx context.Context, imdbID string) (*Details, error) {
	imdbID = strings.TrimSpace(imdbID)
	if !ValidIMDbID(imdbID) {
		return nil, fmt.Errorf("omdb details %q: %w", imdbID, ErrNotFound)
	}

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "short")

	body, err := c.get(ctx, params, "details:"+imdbID)
	if err != nil {
		return nil, err
	}

	var details Details
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("omdb details: decode: %w", err)
	}
	details.Raw = json.RawMessage(body)
	return &details, nil
}

// get performs one API call, consulting the cache first.
// Only successful replies are cached.
func (c *Client) get(ctx context.Context, params url.Values, cacheKey string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("omdb cache get %s: %v", cacheKey, err)
		} else if ok {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("omdb: rate limit: %w", err)
	}

	params.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("omdb: read body: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &APIError{Message: "invalid API key"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("omdb returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Response string `json:"Response"`
		Error    string `json:"Error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("omdb: decode: %w", err)
	}
	if !strings.EqualFold(envelope.Response, "True") {
		msg := strings.ToLower(envelope.Error)
		if strings.Contains(msg, "not found") || strings.Contains(msg, "incorrect imdb id") {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, envelope.Error)
		}
		return nil, &APIError{Message: envelope.Error}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			log.Printf("omdb cache set %s: %v", cacheKey, err)
		}
	}

	return body, nil
}
