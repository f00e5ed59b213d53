package meteostat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/katiamach/meteostat-client/internal/logger"
	"golang.org/x/sync/singleflight"
)

// Resource identifies one cacheable remote file: where it lives under the
// cache root and where to download it from.
type Resource struct {
	Path string
	URL  string
}

// FreshnessPolicy decides whether a cached file fetched at the given time
// is still usable without a refresh.
type FreshnessPolicy func(fetchedAt time.Time) bool

// NeverStale treats any existing cached file as fresh.
func NeverStale(time.Time) bool { return true }

// StaleAfter treats a cached file as stale once it is older than ttl.
func StaleAfter(ttl time.Duration) FreshnessPolicy {
	return func(fetchedAt time.Time) bool {
		return time.Since(fetchedAt) < ttl
	}
}

// cacheManager maps resources to local files, downloading and refreshing
// them as the freshness policy demands. Concurrent requests for the same
// resource share a single in-flight fetch. Files become visible only via
// an atomic rename, so readers never observe a partial write.
type cacheManager struct {
	root  string
	dl    *downloader
	group singleflight.Group
}

func newCacheManager(root string, dl *downloader) *cacheManager {
	return &cacheManager{root: root, dl: dl}
}

// fetchResult reports where the cached file lives and whether this call
// downloaded a new copy.
type fetchResult struct {
	path      string
	refreshed bool
}

// Get returns the local path of the resource, fetching it if missing and
// refreshing it if the policy considers the cached copy stale. A failed
// refresh of an existing file is logged and the stale file is returned:
// degraded data beats no data.
func (m *cacheManager) Get(ctx context.Context, res Resource, fresh FreshnessPolicy) (string, bool, error) {
	v, err, _ := m.group.Do(res.Path, func() (interface{}, error) {
		path := filepath.Join(m.root, filepath.FromSlash(res.Path))

		info, statErr := os.Stat(path)
		if statErr == nil {
			if fresh == nil || fresh(info.ModTime()) {
				return fetchResult{path: path}, nil
			}
			if fetchErr := m.fetch(ctx, res.URL, path); fetchErr != nil {
				logger.Warnf("refresh of %s failed, serving stale copy: %v", res.Path, fetchErr)
				return fetchResult{path: path}, nil
			}
			return fetchResult{path: path, refreshed: true}, nil
		}
		if !errors.Is(statErr, os.ErrNotExist) {
			return fetchResult{}, fmt.Errorf("failed to stat cache file %s: %w", path, statErr)
		}

		if fetchErr := m.fetch(ctx, res.URL, path); fetchErr != nil {
			return fetchResult{}, fetchErr
		}
		return fetchResult{path: path, refreshed: true}, nil
	})
	if err != nil {
		return "", false, err
	}

	result := v.(fetchResult)
	return result.path, result.refreshed, nil
}

// ForceRefresh unconditionally re-fetches the resource. On failure any
// previously cached file is left untouched.
func (m *cacheManager) ForceRefresh(ctx context.Context, res Resource) (string, error) {
	v, err, _ := m.group.Do(res.Path, func() (interface{}, error) {
		path := filepath.Join(m.root, filepath.FromSlash(res.Path))
		if fetchErr := m.fetch(ctx, res.URL, path); fetchErr != nil {
			return fetchResult{}, fetchErr
		}
		return fetchResult{path: path, refreshed: true}, nil
	})
	if err != nil {
		return "", err
	}

	return v.(fetchResult).path, nil
}

// Remove deletes the cached file for the resource if present.
func (m *cacheManager) Remove(res Resource) error {
	path := filepath.Join(m.root, filepath.FromSlash(res.Path))
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file %s: %w", path, err)
	}

	return nil
}

// fetch downloads and decompresses the resource, then stores it with a
// write-to-temp plus rename so the destination is always valid-or-absent.
func (m *cacheManager) fetch(ctx context.Context, url, path string) error {
	body, err := m.dl.fetch(ctx, url)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}

	logger.Infof("cached %s (%d bytes)", path, len(body))
	return nil
}
