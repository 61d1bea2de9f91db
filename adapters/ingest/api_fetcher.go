package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"govista/domain/dataset"
	apperrors "govista/internal/errors"
)

// APIFetcher pulls remote JSON endpoints and normalizes the payloads
// into {headers, rows}. Accepted payload shapes: a bare array of
// objects, or an object with a "rows"/"data" array.
type APIFetcher struct {
	client *http.Client

	// MaxConcurrency bounds parallel page fetches
	MaxConcurrency int64
}

// NewAPIFetcher creates a fetcher with a 30s per-request timeout
func NewAPIFetcher() *APIFetcher {
	return &APIFetcher{
		client:         &http.Client{Timeout: 30 * time.Second},
		MaxConcurrency: 4,
	}
}

// Fetch retrieves one or more endpoint pages concurrently (bounded
// by MaxConcurrency) and merges their rows in argument order. The
// header list is the union of observed keys in first-seen order.
func (f *APIFetcher) Fetch(ctx context.Context, name string, urls []string) (*dataset.Dataset, error) {
	if len(urls) == 0 {
		return nil, apperrors.InvalidInput("no URLs to fetch")
	}

	sem := semaphore.NewWeighted(f.MaxConcurrency)
	pages := make([][]dataset.Row, len(urls))
	errs := make([]error, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, apperrors.IngestFailed("fetch cancelled", err)
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			defer sem.Release(1)
			pages[i], errs[i] = f.fetchPage(ctx, url)
		}(i, url)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, apperrors.IngestFailed(fmt.Sprintf("failed to fetch %s", urls[i]), err)
		}
	}

	var rows []dataset.Row
	for _, page := range pages {
		rows = append(rows, page...)
	}

	headers := unionHeaders(rows)
	log.Printf("[APIFetcher] Fetched %d rows across %d pages (%d columns)", len(rows), len(urls), len(headers))

	ds := dataset.New(name, headers, rows)
	ds.Source = "api"
	return ds, nil
}

func (f *APIFetcher) fetchPage(ctx context.Context, url string) ([]dataset.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeRows(payload)
}

// decodeRows accepts either a bare JSON array of objects or an
// object wrapping the array under "rows" or "data".
func decodeRows(payload []byte) ([]dataset.Row, error) {
	var direct []dataset.Row
	if err := json.Unmarshal(payload, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Rows []dataset.Row `json:"rows"`
		Data []dataset.Row `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil, fmt.Errorf("payload is neither a row array nor a rows/data object: %w", err)
	}
	if wrapped.Rows != nil {
		return wrapped.Rows, nil
	}
	return wrapped.Data, nil
}

// unionHeaders collects row keys across rows. Keys new to a row are
// added in sorted order so the header list is deterministic.
func unionHeaders(rows []dataset.Row) []string {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		var fresh []string
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				fresh = append(fresh, k)
			}
		}
		sort.Strings(fresh)
		headers = append(headers, fresh...)
	}
	return headers
}
