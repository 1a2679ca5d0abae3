// Package cache keeps the last known site data in Redis so a cold start
// renders real content before the first remote snapshot arrives. It is an
// optimization, not a durability layer: writes are best-effort and
// malformed data reads as absent.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/mauro-rocha/portfolio-backend/internal/content"
)

const DefaultKey = "portfolio:site-cache:v1"

// Snapshot is the full cached state: both collections plus the
// normalized site content.
type Snapshot struct {
	Projects []content.Project   `json:"projects"`
	Services []content.Service   `json:"services"`
	Content  content.SiteContent `json:"content"`
}

type Cache struct {
	rdb *redis.Client
	key string
}

// New connects to Redis at addr. An empty addr disables the cache; every
// method on a disabled cache is a no-op.
func New(addr, key string) *Cache {
	if addr == "" {
		return &Cache{key: key}
	}
	if key == "" {
		key = DefaultKey
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		key: key,
	}
}

// NewWithClient wraps an existing client, mainly for tests.
func NewWithClient(rdb *redis.Client, key string) *Cache {
	if key == "" {
		key = DefaultKey
	}
	return &Cache{rdb: rdb, key: key}
}

// Read returns the cached snapshot, or ok=false when the cache is
// disabled, empty or unreadable. It never returns an error: a bad cache
// means starting from defaults, nothing worse.
func (c *Cache) Read(ctx context.Context) (*Snapshot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[warn] operation=cache.read error=%v", err)
		}
		return nil, false
	}

	var loose struct {
		Projects []content.Project `json:"projects"`
		Services []content.Service `json:"services"`
		Content  map[string]any    `json:"content"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		log.Printf("[warn] operation=cache.read error=%v", err)
		return nil, false
	}

	snap := &Snapshot{
		Projects: loose.Projects,
		Services: loose.Services,
		Content:  content.Normalize(loose.Content),
	}
	if snap.Projects == nil {
		snap.Projects = []content.Project{}
	}
	if snap.Services == nil {
		snap.Services = []content.Service{}
	}
	return snap, true
}

// Write stores the snapshot. Failures are logged and swallowed; callers
// never block or fail on the cache.
func (c *Cache) Write(ctx context.Context, snap *Snapshot) {
	if c == nil || c.rdb == nil || snap == nil {
		return
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[warn] operation=cache.write error=%v", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, 0).Err(); err != nil {
		log.Printf("[warn] operation=cache.write error=%v", err)
	}
}

// Ping reports whether the backing Redis is reachable, for health checks.
func (c *Cache) Ping(ctx context.Context) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	return c.rdb.Ping(ctx).Err() == nil
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
