package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"go.uber.org/zap"
)

// Download errors.
var (
	// ErrNotFound is returned when the cover URL answers 404.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedURL is returned for covers that are not http(s) URLs.
	ErrUnsupportedURL = errors.New("unsupported cover URL")
)

// DefaultMaxBytes caps a single cover download.
const DefaultMaxBytes = 5 << 20

// Fetcher downloads cover images into a Manager.
type Fetcher struct {
	cache    *Manager
	http     *http.Client
	maxBytes int64
	log      *zap.Logger
}

// NewFetcher creates a Fetcher. A zero timeout means 30 seconds.
func NewFetcher(m *Manager, timeout time.Duration, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		cache:    m,
		http:     &http.Client{Timeout: timeout},
		maxBytes: DefaultMaxBytes,
		log:      log,
	}
}

// Fetch downloads rawURL and stores it as bookID's cover.
func (f *Fetcher) Fetch(ctx context.Context, bookID, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	return f.cache.Store(bookID, resp.Body, f.maxBytes)
}

// Report summarizes a Sync run.
type Report struct {
	Fetched int
	Cached  int // already present
	Skipped int // no cover URL
	Failed  map[string]error
}

// Sync makes sure every book with a cover URL has a cached copy. Existing
// copies are kept unless refresh is set. Per-book failures are collected in
// the report; only context cancellation stops the run.
func (f *Fetcher) Sync(ctx context.Context, books []catalog.Book, refresh bool) (Report, error) {
	rep := Report{Failed: map[string]error{}}
	for _, b := range books {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if strings.TrimSpace(b.CoverURL) == "" {
			rep.Skipped++
			continue
		}
		if !refresh && f.cache.Exists(b.ID) {
			rep.Cached++
			continue
		}

		path, err := f.Fetch(ctx, b.ID, b.CoverURL)
		if err != nil {
			f.log.Warn("cover download failed",
				zap.String("id", b.ID),
				zap.String("url", b.CoverURL),
				zap.Error(err))
			rep.Failed[b.ID] = err
			continue
		}
		f.log.Debug("cover cached", zap.String("id", b.ID), zap.String("path", path))
		rep.Fetched++
	}
	return rep, nil
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cover download error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
