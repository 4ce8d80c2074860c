package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultFetchTimeout bounds a remote data fetch
const DefaultFetchTimeout = 30 * time.Second

var httpClient = &http.Client{
	Timeout: DefaultFetchTimeout,
}

// FetchData reads the data resource once. http(s) locations are fetched
// with a GET; anything else is read from the local filesystem. There is no
// retry.
func FetchData(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return fetchRemote(ctx, location)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", location, err)
	}
	return data, nil
}

func fetchRemote(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", location, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", location, err)
	}
	return data, nil
}
