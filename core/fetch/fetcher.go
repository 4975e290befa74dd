// Package fetch implements the VersionResolver interface.
// It queries the PyPI JSON API for the latest release of a dependency.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "moddoc/1.0 (https://github.com/gaurav-prasanna/moddoc)"
	// DefaultBaseURL is the PyPI JSON API root.
	DefaultBaseURL = "https://pypi.org/pypi"
)

// pypiProject is the subset of the PyPI project document we read.
type pypiProject struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"info"`
}

// PyPIClient resolves package versions via HTTP.
type PyPIClient struct {
	baseURL string
	client  *http.Client
}

// New creates a PyPIClient against baseURL. An empty baseURL uses PyPI.
func New(baseURL string) *PyPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PyPIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// LatestVersion returns the latest released version of the named package.
func (c *PyPIClient) LatestVersion(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, endpoint)
	}

	var project pypiProject
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return "", fmt.Errorf("decoding response for %s: %w", name, err)
	}
	if project.Info.Version == "" {
		return "", fmt.Errorf("no version published for %s", name)
	}
	return project.Info.Version, nil
}
