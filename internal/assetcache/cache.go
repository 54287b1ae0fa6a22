package assetcache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

const installConcurrency = 4

var ErrEmptyManifest = errors.New("asset manifest has no version")

// Cache binds a manifest to its storage and the network fallback.
type Cache struct {
	manifest Manifest
	storage  Storage
	fetcher  Fetcher
	clock    clock.Clock
}

func New(m Manifest, s Storage, f Fetcher, clk clock.Clock) *Cache {
	if clk == nil {
		clk = clock.System{}
	}
	return &Cache{manifest: m, storage: s, fetcher: f, clock: clk}
}

func (c *Cache) Manifest() Manifest { return c.manifest }

// Install fetches every manifest entry and commits them as the current
// version. A single failed fetch aborts the install and nothing is written.
func (c *Cache) Install(ctx context.Context) error {
	if c.manifest.Version == "" {
		return ErrEmptyManifest
	}
	if c.fetcher == nil {
		return fmt.Errorf("install %s: no network fetcher configured", c.manifest.Version)
	}

	var mu sync.Mutex
	entries := make(map[string]Response, len(c.manifest.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(installConcurrency)
	for _, e := range c.manifest.Entries {
		resource := NormalizeResource(e)
		g.Go(func() error {
			resp, err := c.fetcher.Fetch(gctx, resource)
			if err != nil {
				return err
			}
			mu.Lock()
			entries[resource] = resp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Log.WithError(err).Warnf("asset install %s aborted", c.manifest.Version)
		return fmt.Errorf("install %s: %w", c.manifest.Version, err)
	}
	if err := c.storage.Commit(ctx, c.manifest.Version, c.clock.Now(), entries); err != nil {
		return fmt.Errorf("install %s: %w", c.manifest.Version, err)
	}
	logging.Log.Infof("installed asset version %s (%d entries)", c.manifest.Version, len(entries))
	return nil
}

// Activate deletes every stored version other than the current one and
// returns the names it removed.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	versions, err := c.storage.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("activate %s: %w", c.manifest.Version, err)
	}
	var deleted []string
	var errs error
	for _, v := range versions {
		if v.Version == c.manifest.Version {
			continue
		}
		if err := c.storage.DeleteVersion(ctx, v.Version); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		logging.Log.Debugf("evicted asset version %s", v.Version)
		deleted = append(deleted, v.Version)
	}
	return deleted, errs
}

// Status lists installed versions, newest first.
func (c *Cache) Status(ctx context.Context) ([]VersionInfo, error) {
	return c.storage.Versions(ctx)
}

// Match looks resource up across installed versions: the current version
// first, then the others newest first.
func (c *Cache) Match(ctx context.Context, resource string) (Response, bool, error) {
	resource = NormalizeResource(resource)
	versions, err := c.storage.Versions(ctx)
	if err != nil {
		return Response{}, false, err
	}
	order := make([]string, 0, len(versions))
	for _, v := range versions {
		if v.Version == c.manifest.Version {
			order = append([]string{v.Version}, order...)
			continue
		}
		order = append(order, v.Version)
	}
	for _, version := range order {
		resp, ok, err := c.storage.Lookup(ctx, version, resource)
		if err != nil {
			return Response{}, false, err
		}
		if ok {
			return resp, true, nil
		}
	}
	return Response{}, false, nil
}

// Fetch answers from the cache when it can and otherwise goes to the
// network. Network responses are returned as-is and never stored. The bool
// reports a cache hit.
func (c *Cache) Fetch(ctx context.Context, resource string) (Response, bool, error) {
	resp, ok, err := c.Match(ctx, resource)
	if err != nil {
		logging.Log.WithError(err).Warnf("asset cache lookup for %s failed", resource)
	}
	if ok {
		return resp, true, nil
	}
	if c.fetcher == nil {
		return Response{}, false, fmt.Errorf("%s is not cached and no network fetcher is configured", resource)
	}
	resp, err = c.fetcher.Fetch(ctx, NormalizeResource(resource))
	if err != nil {
		return Response{}, false, err
	}
	return resp, false, nil
}
