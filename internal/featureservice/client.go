package featureservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// ErrService is wrapped by every error the service itself reports.
var ErrService = errors.New("feature service error")

// PageError identifies the page that failed a paginated load.
type PageError struct {
	Offset int
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page at offset %d: %v", e.Offset, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Options configures a Client. Zero values fall back to the layer defaults.
type Options struct {
	URL                string
	PageSize           int
	PageCount          int
	GeometryPrecision  int
	MaxAllowableOffset float64
	Timeout            time.Duration
	RequestsPerSecond  float64
	HTTPClient         *http.Client
	Logger             *slog.Logger
}

// Client loads eclipse features from a FeatureServer layer.
type Client struct {
	endpoint  string
	http      *http.Client
	pageSize  int
	pageCount int
	precision int
	offset    float64
	timeout   time.Duration
	limiter   *rate.Limiter
	log       *slog.Logger
}

// New builds a client for the layer at opts.URL.
func New(opts Options) *Client {
	c := &Client{
		endpoint:  strings.TrimRight(opts.URL, "/") + "/query",
		http:      opts.HTTPClient,
		pageSize:  opts.PageSize,
		pageCount: opts.PageCount,
		precision: opts.GeometryPrecision,
		offset:    opts.MaxAllowableOffset,
		timeout:   opts.Timeout,
		log:       opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.pageSize <= 0 {
		c.pageSize = 200
	}
	if c.pageCount <= 0 {
		c.pageCount = 5
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// Query returns the request for the page starting at offset.
func (c *Client) Query(offset, count int) Query {
	return Query{
		Where:              "1=1",
		OutFields:          OutFields,
		OrderBy:            "Date",
		OutSR:              4326,
		GeometryPrecision:  c.precision,
		MaxAllowableOffset: c.offset,
		Offset:             offset,
		Count:              count,
	}
}

// Page fetches count features starting at offset.
func (c *Client) Page(ctx context.Context, offset, count int) ([]Feature, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", err)
		}
	}

	u := c.endpoint + "?" + c.Query(offset, count).Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrService, resp.StatusCode)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("%w: %d %s", ErrService, body.Error.Code, body.Error.Message)
	}

	c.log.Debug("page fetched",
		slog.Int("offset", offset),
		slog.Int("features", len(body.Features)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return body.Features, nil
}

// FetchAll issues every page concurrently and joins them in page order. Any
// failed page fails the whole load with a *PageError.
func (c *Client) FetchAll(ctx context.Context) ([]eclipse.Record, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	pages := make([][]Feature, c.pageCount)
	g, gctx := errgroup.WithContext(ctx)
	for i := range pages {
		offset := i * c.pageSize
		g.Go(func() error {
			features, err := c.Page(gctx, offset, c.pageSize)
			if err != nil {
				return &PageError{Offset: offset, Err: err}
			}
			pages[i] = features
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Error("load failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetch eclipses: %w", err)
	}

	var records []eclipse.Record
	skipped := 0
	for _, page := range pages {
		for _, f := range page {
			r, err := f.Record()
			if err != nil {
				skipped++
				c.log.Warn("skipping feature", slog.String("error", err.Error()))
				continue
			}
			records = append(records, r)
		}
	}
	c.log.Info("load complete",
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
		slog.Int("pages", c.pageCount),
	)
	return records, nil
}
