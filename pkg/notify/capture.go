// Package notify receives externally-delivered notification events and
// feeds the ones that look like transactions into the importer. Delivery
// systems redeliver, so a bounded dedup cache guards against processing the
// same event twice.
package notify

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"

	"github.com/danwoo/gagyebu/pkg/importer"
	"github.com/danwoo/gagyebu/pkg/models"
)

// Event is one delivered notification.
type Event struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Capture owns the dedup cache: keyed by (source, title, text), capped at
// maxEntries with oldest-first eviction, entries expiring after the
// eviction TTL. The dedup window is shorter than the TTL so a legitimately
// repeated transaction (same text, minutes later) still gets through while
// immediate redeliveries do not.
type Capture struct {
	importer   *importer.Importer
	logger     *log.Logger
	cache      *gocache.Cache
	maxEntries int
	window     time.Duration
}

func NewCapture(imp *importer.Importer, logger *log.Logger, maxEntries int, window, ttl time.Duration) *Capture {
	if window > ttl {
		window = ttl
	}
	return &Capture{
		importer:   imp,
		logger:     logger,
		cache:      gocache.New(ttl, ttl),
		maxEntries: maxEntries,
		window:     window,
	}
}

// Handle processes one event. A nil entry with nil error means the event
// was a duplicate or did not look like a transaction.
func (c *Capture) Handle(ev Event) (*models.LedgerEntry, error) {
	key := fmt.Sprintf("%s|%s|%s", ev.Source, ev.Title, ev.Text)

	if seen, ok := c.cache.Get(key); ok {
		if t, ok := seen.(time.Time); ok && time.Since(t) < c.window {
			c.logger.Debug("duplicate notification dropped", "source", ev.Source, "title", ev.Title)
			return nil, nil
		}
	}
	c.cache.SetDefault(key, time.Now())
	c.enforceCapacity()

	return c.importer.ImportNotification(ev.Title, ev.Text)
}

// enforceCapacity evicts the oldest-seen entries when the cache grows past
// its cap. go-cache only expires by TTL, so the cap is enforced here.
func (c *Capture) enforceCapacity() {
	if c.maxEntries <= 0 || c.cache.ItemCount() <= c.maxEntries {
		return
	}
	c.cache.DeleteExpired()
	for c.cache.ItemCount() > c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for key, item := range c.cache.Items() {
			seen, ok := item.Object.(time.Time)
			if !ok {
				oldestKey = key
				break
			}
			if oldestKey == "" || seen.Before(oldest) {
				oldestKey, oldest = key, seen
			}
		}
		if oldestKey == "" {
			return
		}
		c.cache.Delete(oldestKey)
	}
}
