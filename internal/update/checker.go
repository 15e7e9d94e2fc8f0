// Package update checks GitHub for newer docstack releases, so users
// know when the embedded boilerplate content has moved on.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the release endpoint queried by the production checker.
const DefaultAPIURL = "https://api.github.com/repos/docstack-dev/docstack/releases/latest"

// ErrNoRelease indicates the repository has no published release.
var ErrNoRelease = errors.New("update: no release found")

// Release describes the latest published release.
type Release struct {
	Version     string    // Tag name, e.g. "v1.3.0"
	PublishedAt time.Time // Publication timestamp
	URL         string    // Human-facing release page
}

// Checker fetches the latest release metadata.
type Checker interface {
	// CheckLatest queries the release endpoint and returns the newest release.
	CheckLatest(ctx context.Context) (*Release, error)
}

// releaseResponse represents the GitHub Releases API JSON response.
type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

type checker struct {
	apiURL string
	client *http.Client
}

// NewChecker creates a Checker that queries the given API URL.
// Pass nil for a default 10s-timeout client; tests pass an
// httptest.Server URL directly.
func NewChecker(apiURL string, client *http.Client) Checker {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &checker{apiURL: apiURL, client: client}
}

// CheckLatest fetches the latest release metadata.
func (c *checker) CheckLatest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("update: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "docstack-updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNoRelease
		}
		return nil, fmt.Errorf("update: unexpected status %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("update: decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, ErrNoRelease
	}

	return &Release{
		Version:     release.TagName,
		PublishedAt: release.PublishedAt,
		URL:         release.HTMLURL,
	}, nil
}

// IsNewer reports whether latest is a strictly newer version than
// current. Versions are dotted numerics with an optional "v" prefix;
// anything unparseable compares as not newer.
func IsNewer(current, latest string) bool {
	cur := parseVersion(current)
	lat := parseVersion(latest)
	if cur == nil || lat == nil {
		return false
	}

	for i := 0; i < len(cur) || i < len(lat); i++ {
		c, l := 0, 0
		if i < len(cur) {
			c = cur[i]
		}
		if i < len(lat) {
			l = lat[i]
		}
		if l != c {
			return l > c
		}
	}
	return false
}

// parseVersion splits "v1.2.3" into numeric segments, dropping any
// pre-release suffix after "-".
func parseVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil
	}
	if idx := strings.IndexByte(v, '-'); idx >= 0 {
		v = v[:idx]
	}

	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	return nums
}
