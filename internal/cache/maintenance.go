package cache

import "time"

// cleanupLoop периодически убирает истёкшие записи.
// Без него записи, которые пишутся один раз и больше не читаются,
// висели бы в памяти до вытеснения по ёмкости.
func (c *TodoCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.removeExpired(now)
		}
	}
}

func (c *TodoCache) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Идём с хвоста списка: там самые давние записи
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		e := el.Value.(*entry)
		if e.hasExpiry && !e.expiresAt.After(now) {
			c.removeLocked(el)
		}
		el = prev
	}
}
