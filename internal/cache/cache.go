// Package cache реализует потокобезопасный кэш задач по ID
// с TTL и LRU-вытеснением. Кэш не является источником истины:
// хранилище всегда авторитетно, записи здесь можно терять безболезненно.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/emobile/todo-service/internal/models"
)

// Config задаёт ёмкость и время жизни записей.
// MaxEntries <= 0 - без ограничения, TTL <= 0 - без истечения,
// CleanupInterval <= 0 - без фоновой чистки (ленивое истечение работает всегда).
type Config struct {
	MaxEntries      int
	TTL             time.Duration
	CleanupInterval time.Duration
}

type entry struct {
	id        int64
	todo      models.Todo
	expiresAt time.Time
	hasExpiry bool
}

// TodoCache - map для O(1) поиска по ID плюс двусвязный список
// для порядка использования (Front = самая свежая запись).
type TodoCache struct {
	mu sync.Mutex

	maxEntries int
	ttl        time.Duration
	items      map[int64]*list.Element
	lru        *list.List

	cleanupEvery time.Duration
	done         chan struct{}
	wg           sync.WaitGroup
	closed       bool
}

func New(cfg Config) *TodoCache {
	c := &TodoCache{
		maxEntries:   cfg.MaxEntries,
		ttl:          cfg.TTL,
		items:        make(map[int64]*list.Element),
		lru:          list.New(),
		cleanupEvery: cfg.CleanupInterval,
		done:         make(chan struct{}),
	}

	if c.cleanupEvery > 0 {
		c.wg.Add(1)
		go c.cleanupLoop()
	}
	return c
}

// Close останавливает фоновую чистку. Повторный вызов безопасен.
func (c *TodoCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

// Get возвращает копию записи. Промах - не ошибка, просто отсутствие.
// Истёкшие записи удаляются при обращении.
func (c *TodoCache) Get(id int64) (models.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if !ok {
		return models.Todo{}, false
	}

	e := el.Value.(*entry)
	if e.hasExpiry && !e.expiresAt.After(time.Now()) {
		c.removeLocked(el)
		return models.Todo{}, false
	}

	c.lru.MoveToFront(el)
	// Возвращаем копию, чтобы вызывающий не менял кэшированную запись
	return e.todo, true
}

// Put безусловно перезаписывает запись по ID
func (c *TodoCache) Put(id int64, todo models.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	hasExpiry := c.ttl > 0
	var expiresAt time.Time
	if hasExpiry {
		expiresAt = time.Now().Add(c.ttl)
	}

	if el, ok := c.items[id]; ok {
		e := el.Value.(*entry)
		e.todo = todo
		e.expiresAt = expiresAt
		e.hasExpiry = hasExpiry
		c.lru.MoveToFront(el)
		return
	}

	el := c.lru.PushFront(&entry{
		id:        id,
		todo:      todo,
		expiresAt: expiresAt,
		hasExpiry: hasExpiry,
	})
	c.items[id] = el

	c.evictIfNeededLocked()
}

// Evict удаляет запись, если она есть; для отсутствующей - no-op
func (c *TodoCache) Evict(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id]; ok {
		c.removeLocked(el)
	}
}

func (c *TodoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TodoCache) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	c.lru.Remove(el)
	delete(c.items, e.id)
}

func (c *TodoCache) evictIfNeededLocked() {
	if c.maxEntries <= 0 {
		return
	}
	for len(c.items) > c.maxEntries {
		back := c.lru.Back()
		if back == nil {
			return
		}
		c.removeLocked(back)
	}
}
