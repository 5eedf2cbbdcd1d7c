// Package gitignore fetches ignore-file templates from the github/gitignore
// collection.
package gitignore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// DefaultBaseURL serves the raw template files of the github/gitignore repo.
const DefaultBaseURL = "https://raw.githubusercontent.com/github/gitignore/main"

// ErrUnknownTemplate is returned when the template source has no file for
// the requested name.
var ErrUnknownTemplate = errors.New("unknown gitignore template")

// Fetcher retrieves gitignore templates by name over HTTPS.
type Fetcher struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewFetcher returns a Fetcher pointed at the github/gitignore collection.
func NewFetcher(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Logger:     logger,
	}
}

// Fetch retrieves the template body for name. The lookup is case-sensitive:
// "Python" resolves, "python" does not. The body is returned verbatim.
func (f *Fetcher) Fetch(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/%s.gitignore", f.BaseURL, name)
	f.Logger.DebugContext(ctx, "fetching gitignore template", "template", name, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build template request for %q: %w", name, err)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gitignore template %q: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// Only a 404 means the name itself is unknown; anything else is a
		// template-source problem and must not trigger the fallback.
		return "", fmt.Errorf("%w: %q (HTTP %d)", ErrUnknownTemplate, name, resp.StatusCode)
	default:
		return "", fmt.Errorf("template source returned HTTP %d for %q", resp.StatusCode, name)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read template body for %q: %w", name, err)
	}
	return string(body), nil
}
