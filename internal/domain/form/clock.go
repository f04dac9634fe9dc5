package form

import (
	"sync"
	"time"
)

// IDClock выдает идентификаторы из времени в миллисекундах.
// В пределах процесса идентификаторы строго возрастают.
type IDClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDClock(now func() time.Time) *IDClock {
	if now == nil {
		now = time.Now
	}
	return &IDClock{now: now}
}

// Next возвращает новый id и момент создания записи
func (c *IDClock) Next() (int64, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC()
	id := t.UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id

	return id, t
}
