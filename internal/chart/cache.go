package chart

import (
	"sync"

	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
)

// RadarCache memoises the encoded radar figure of each country in a bounded LRU.
// Views come from an immutable registry, so an entry never goes stale.
type RadarCache struct {
	cache   *lruCache
	metrics *observability.Metrics
}

// NewRadarCache creates a cache holding at most maxEntries encoded figures.
func NewRadarCache(maxEntries int, metrics *observability.Metrics) *RadarCache {
	return &RadarCache{
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// RadarJSON returns the encoded ImpactRadar figure for view.
// The returned bytes are shared; callers must not modify them.
func (c *RadarCache) RadarJSON(view pipeline.CountryView) ([]byte, error) {
	if b, ok := c.cache.get(view.Country); ok {
		c.metrics.ChartCache.WithLabelValues("hit").Inc()
		return b, nil
	}
	c.metrics.ChartCache.WithLabelValues("miss").Inc()

	b, err := ImpactRadar(view).JSON()
	if err != nil {
		return nil, err
	}
	c.cache.put(view.Country, b)
	return b, nil
}

// lruCache is a simple thread-safe LRU cache of encoded figures.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: max(maxEntries, 1),
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
