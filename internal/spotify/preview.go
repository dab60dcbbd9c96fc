package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// previewRe extracts the preview audio URL from the JSON embedded in the
// track's embed page.
var previewRe = regexp.MustCompile(`"audioPreview":\s*{\s*"url":\s*"([^"]+)"`)

// PreviewURL returns the 30-second preview URL for a track, or "" when no
// preview exists. The Web API stopped exposing preview URLs, so this
// scrapes the public embed page instead; it breaks if Spotify reshapes
// that page, which is why callers treat the result as best-effort.
func (c *Client) PreviewURL(ctx context.Context, trackID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.embedURL+trackID, nil)
	if err != nil {
		return "", fmt.Errorf("creating embed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching embed page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("embed page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading embed page: %w", err)
	}

	match := previewRe.FindSubmatch(body)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}
