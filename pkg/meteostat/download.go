package meteostat

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// downloader retrieves gzip-compressed bulk files. All requests share one
// circuit breaker so a broken upstream stops producing network load fast.
type downloader struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newDownloader(client *http.Client) *downloader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "meteostat-bulk",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &downloader{
		client:  client,
		breaker: cb,
	}
}

// fetch downloads the given URL and returns the decompressed body.
// Network failures, non-200 responses and decompression failures all
// surface as *FetchError.
func (d *downloader) fetch(ctx context.Context, url string) ([]byte, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		return d.download(ctx, url)
	})
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return nil, err
		}
		return nil, &FetchError{URL: url, Cause: err}
	}

	return result.([]byte), nil
}

func (d *downloader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: fmt.Errorf("failed to open gzip stream: %w", err)}
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: fmt.Errorf("failed to decompress body: %w", err)}
	}

	return body, nil
}
