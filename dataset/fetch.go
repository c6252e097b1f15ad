package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

// Fetch downloads a remote dataset. The caller closes the returned body.
func Fetch(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset url %q: %w", url, err)
	}
	log.Debug("downloading dataset", "url", url)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s: received status %s", url, resp.Status)
	}
	return resp.Body, nil
}
