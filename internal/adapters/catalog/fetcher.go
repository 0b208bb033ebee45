package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
)

const (
	httpClientTimeout      = 30 * time.Second
	supportedSchemaVersion = 1
)

// fetcher loads catalog indexes, preferring the on-disk cache and falling
// back to HTTP. Concurrent loads of the same URL collapse into one fetch.
type fetcher struct {
	cacheDir string
	client   *http.Client
	logger   ports.Logger
	group    singleflight.Group
}

func newFetcher(cacheDir string, client *http.Client, logger ports.Logger) (*fetcher, error) {
	cleanDir := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanDir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogCacheCreateFailed.Error())
	}

	return &fetcher{
		cacheDir: cleanDir,
		client:   client,
		logger:   logger,
	}, nil
}

// load returns the index for url. Without refresh a cached copy wins.
// A failed fetch falls back to a stale cache with a warning; with no cache
// the catalog is unavailable.
func (f *fetcher) load(ctx context.Context, url string, refresh bool) (*index, error) {
	v, err, _ := f.group.Do(url, func() (any, error) {
		return f.loadOnce(ctx, url, refresh)
	})
	if err != nil {
		return nil, err
	}
	return v.(*index), nil
}

func (f *fetcher) loadOnce(ctx context.Context, url string, refresh bool) (*index, error) {
	cachePath := f.cachePath(url)

	if !refresh {
		if idx, err := f.readCache(cachePath); err == nil {
			return idx, nil
		}
	}

	idx, raw, fetchErr := f.fetch(ctx, url)
	if fetchErr != nil {
		if cached, cacheErr := f.readCache(cachePath); cacheErr == nil {
			f.logger.Warn(fmt.Sprintf("catalog fetch failed, using cached index: %v", fetchErr))
			return cached, nil
		}
		return nil, zerr.With(zerr.Wrap(fetchErr, domain.ErrCatalogUnavailable.Error()), "url", url)
	}

	if err := f.writeCache(cachePath, raw); err != nil {
		// Resolution proceeds on the in-memory index either way.
		f.logger.Warn(fmt.Sprintf("catalog index not cached: %v", err))
	}

	return idx, nil
}

// fetch retrieves and decodes the index at url, returning the raw payload
// alongside it for caching.
func (f *fetcher) fetch(ctx context.Context, url string) (*index, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrCatalogRequestFailed.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrCatalogRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		reqErr := zerr.With(domain.ErrCatalogRequestFailed, "status_code", resp.StatusCode)
		return nil, nil, zerr.With(reqErr, "url", url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrCatalogRequestFailed.Error())
	}

	idx, err := decodeIndex(raw)
	if err != nil {
		return nil, nil, err
	}

	return idx, raw, nil
}

func decodeIndex(raw []byte) (*index, error) {
	var idx index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogParseFailed.Error())
	}
	if idx.SchemaVersion != supportedSchemaVersion {
		return nil, zerr.With(domain.ErrCatalogParseFailed, "schema_version", idx.SchemaVersion)
	}
	return &idx, nil
}

func (f *fetcher) readCache(path string) (*index, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCatalogCacheReadFailed
		}
		return nil, zerr.Wrap(err, domain.ErrCatalogCacheReadFailed.Error())
	}
	return decodeIndex(data)
}

func (f *fetcher) writeCache(path string, data []byte) error {
	if err := atomicWriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCatalogCacheWriteFailed.Error())
	}
	return nil
}

// cachePath keys the cache by a digest of the URL so unrelated catalogs
// never collide.
func (f *fetcher) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:])+".json")
}

// atomicWriteFile writes data to a temp file in the target directory and
// renames it into place. Readers never observe a partial write.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".husk-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
