// Package loader produces the eclipse catalog from the local cache or, when
// the cache is stale, from the feature service.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// Cache is the subset of the record cache the loader needs.
type Cache interface {
	Fresh(ctx context.Context, ttl time.Duration, now time.Time) (bool, error)
	FetchedAt(ctx context.Context) (time.Time, bool, error)
	Records(ctx context.Context) ([]eclipse.Record, error)
	ReplaceAll(ctx context.Context, records []eclipse.Record, fetchedAt time.Time) error
}

// Fetcher downloads the full catalog.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]eclipse.Record, error)
}

// Result is a loaded catalog and where it came from.
type Result struct {
	Catalog   *eclipse.Catalog
	FromCache bool
	FetchedAt time.Time
}

// Loader picks between cache and service.
type Loader struct {
	Cache   Cache // optional
	Fetcher Fetcher
	TTL     time.Duration
	Refresh bool
	Log     *slog.Logger
	Now     func() time.Time
}

// Load returns the catalog. A fresh cache is used unless Refresh is set; a
// successful fetch is written back to the cache. Cache failures are logged
// and never fail the load.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	log := l.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	if l.Cache != nil && !l.Refresh {
		if res, ok := l.fromCache(ctx, log, now()); ok {
			return res, nil
		}
	}

	if l.Fetcher == nil {
		return Result{}, fmt.Errorf("load catalog: no fetcher configured")
	}
	records, err := l.Fetcher.FetchAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}
	fetchedAt := now()

	if l.Cache != nil {
		if err := l.Cache.ReplaceAll(ctx, records, fetchedAt); err != nil {
			log.Warn("cache write failed", slog.String("error", err.Error()))
		}
	}
	return Result{Catalog: eclipse.NewCatalog(records), FetchedAt: fetchedAt}, nil
}

func (l *Loader) fromCache(ctx context.Context, log *slog.Logger, now time.Time) (Result, bool) {
	fresh, err := l.Cache.Fresh(ctx, l.TTL, now)
	if err != nil {
		log.Warn("cache check failed", slog.String("error", err.Error()))
		return Result{}, false
	}
	if !fresh {
		return Result{}, false
	}
	records, err := l.Cache.Records(ctx)
	if err != nil {
		log.Warn("cache read failed", slog.String("error", err.Error()))
		return Result{}, false
	}
	at, _, _ := l.Cache.FetchedAt(ctx)
	log.Info("catalog loaded from cache", slog.Int("records", len(records)))
	return Result{Catalog: eclipse.NewCatalog(records), FromCache: true, FetchedAt: at}, true
}
