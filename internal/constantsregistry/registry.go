// Package constantsregistry fetches per-tenant business constants from a remote
// registry and overlays them on the locally configured ones.
package constantsregistry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"bizplan-engine/internal/forecast"
)

const SourceRegistry = "registry"

// Registry resolves the constants of a tenant. A Registry without a URL always
// returns the local constants.
type Registry struct {
	url    string
	base   forecast.Constants
	source string
	client *http.Client
	cache  sync.Map // tenant -> forecast.Constants
}

// New returns a registry backed by baseURL. base and source describe the local
// constants used when baseURL is empty or a fetch fails.
func New(baseURL string, base forecast.Constants, source string) *Registry {
	r := &Registry{url: baseURL, base: base, source: source}
	if baseURL != "" {
		r.client = &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

// Constants returns the constants of tenant and where they came from. Fetched
// constants are cached; failures fall back to the local constants and are
// retried on the next call.
func (r *Registry) Constants(ctx context.Context, tenant string) (forecast.Constants, string) {
	if r.url == "" || tenant == "" {
		return r.base, r.source
	}
	if c, ok := r.cache.Load(tenant); ok {
		return c.(forecast.Constants), SourceRegistry
	}

	c, err := r.fetch(ctx, tenant)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenant).Msg("constants registry unavailable, using local constants")
		return r.base, r.source
	}
	r.cache.Store(tenant, c)
	return c, SourceRegistry
}

// Prefetch warms the cache for tenants concurrently.
func (r *Registry) Prefetch(ctx context.Context, tenants []string) {
	if r.url == "" {
		return
	}

	var wg sync.WaitGroup
	for _, tenant := range tenants {
		if _, ok := r.cache.Load(tenant); ok {
			continue
		}
		wg.Add(1)
		go func(tenant string) {
			defer wg.Done()
			r.Constants(ctx, tenant)
		}(tenant)
	}
	wg.Wait()
}

func (r *Registry) fetch(ctx context.Context, tenant string) (forecast.Constants, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"/constants/"+url.PathEscape(tenant), nil)
	if err != nil {
		return forecast.Constants{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return forecast.Constants{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return forecast.Constants{}, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	// fields missing from the response keep their local value
	c := r.base
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return forecast.Constants{}, fmt.Errorf("decode constants: %w", err)
	}
	if err := c.Validate(); err != nil {
		return forecast.Constants{}, err
	}
	return c, nil
}
