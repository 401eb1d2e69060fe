package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Default directory resolver configuration constants.
const (
	defaultLookupTimeout = 2 * time.Second
)

// Compile-time interface check.
var _ Resolver = (*DirectoryResolver)(nil)

// DirectoryResolver looks up display names against an external user
// directory over HTTP. Every lookup gets its own deadline so one slow
// directory call cannot stall a whole leaderboard render.
type DirectoryResolver struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// DirectoryOption applies a configuration option to the DirectoryResolver.
type DirectoryOption func(*DirectoryResolver)

// WithLookupTimeout sets the per-lookup deadline.
func WithLookupTimeout(timeout time.Duration) DirectoryOption {
	return func(r *DirectoryResolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) DirectoryOption {
	return func(r *DirectoryResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// NewDirectoryResolver creates a resolver querying GET {baseURL}/users/{id}.
func NewDirectoryResolver(baseURL string, opts ...DirectoryOption) *DirectoryResolver {
	r := &DirectoryResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		timeout: defaultLookupTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// userRecord mirrors the directory's user payload.
type userRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DisplayName queries the directory. Timeouts, transport errors and 404s all
// map to ErrUnresolved so rendering can skip the entry.
func (r *DirectoryResolver) DisplayName(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	url := r.baseURL + "/users/" + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrUnresolved
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: directory returned %d", ErrUnresolved, resp.StatusCode)
	}

	var rec userRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}
	if rec.Name == "" {
		return "", ErrUnresolved
	}
	return rec.Name, nil
}
