// Package readercache provides an on-demand, bounded cache of chromosome
// Readers: opening a chromosome's .bin/.dat files is cheap compared to
// streaming them, but scrolling across a boundary needs the neighboring
// chromosome's reader ready immediately, so a small number of readers
// (current plus immediate neighbors) are kept open at once rather than
// reopened on every crossing.
package readercache

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/inodb/seqview/internal/reader"
)

// Loader opens a fresh Reader for a chromosome at its default start
// position; satisfied by a closure around reader.Open.
type Loader interface {
	Load(ch string) (*reader.Reader, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ch string) (*reader.Reader, error)

func (f LoaderFunc) Load(ch string) (*reader.Reader, error) { return f(ch) }

// entry is one cached reader; Cache.order keeps entries least recently used
// first, for LRU eviction.
type entry struct {
	ch     string
	reader *reader.Reader
}

// Cache is a bounded, on-demand Reader cache keyed by chromosome name.
// Capacity defaults to 3 (current chromosome plus one neighbor on each
// side), the working set a scrolling view ever needs open simultaneously.
type Cache struct {
	loader   Loader
	log      *zap.Logger
	capacity int
	order    []entry
}

// New creates a Cache backed by loader, evicting least-recently-used
// readers once more than capacity are open (capacity <= 0 defaults to 3).
func New(loader Loader, log *zap.Logger, capacity int) *Cache {
	if capacity <= 0 {
		capacity = 3
	}
	return &Cache{loader: loader, log: log, capacity: capacity}
}

// Get returns the cached reader for ch, loading it via the Loader if not
// already open, and marks it most-recently-used.
func (c *Cache) Get(ch string) (*reader.Reader, error) {
	if ch == "" {
		return nil, fmt.Errorf("readercache: empty chromosome name")
	}
	for i, e := range c.order {
		if e.ch == ch {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, e)
			return e.reader, nil
		}
	}

	r, err := c.loader.Load(ch)
	if err != nil {
		return nil, err
	}
	c.order = append(c.order, entry{ch: ch, reader: r})
	c.evictOverflow()
	return r, nil
}

// Put registers an already-open reader (e.g. the session's initial
// chromosome, opened with a caller-chosen starting position rather than
// the Loader's default) as most-recently-used.
func (c *Cache) Put(ch string, r *reader.Reader) {
	for i, e := range c.order {
		if e.ch == ch {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, entry{ch: ch, reader: r})
	c.evictOverflow()
}

func (c *Cache) evictOverflow() {
	for len(c.order) > c.capacity {
		victim := c.order[0]
		c.order = c.order[1:]
		if err := victim.reader.Close(); err != nil {
			c.log.Warn("readercache: closing evicted reader", zap.String("chromosome", victim.ch), zap.Error(err))
		}
	}
}

// Close closes every open reader, combining any errors with multierr.
func (c *Cache) Close() error {
	var err error
	for _, e := range c.order {
		err = multierr.Append(err, e.reader.Close())
	}
	c.order = nil
	return err
}
