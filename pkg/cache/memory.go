package cache

import (
	"context"
	"sync"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/sirupsen/logrus"
)

type cachedRecord struct {
	Record    models.ActionRecord
	Timestamp time.Time
}

type Memory struct {
	mu      sync.Mutex
	records map[string]cachedRecord
	ttl     time.Duration
	now     func() time.Time

	lastSweep time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		records: make(map[string]cachedRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached record, or false when it is missing or expired.
func (m *Memory) Get(_ context.Context, shortID string) (models.ActionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.records[shortID]
	if !ok {
		return models.ActionRecord{}, false
	}

	if m.now().Sub(entry.Timestamp) > m.ttl {
		delete(m.records, shortID)
		return models.ActionRecord{}, false
	}

	logrus.Debugf("action %s served from cache", shortID)
	return entry.Record, true
}

// Set stores rec. Expired entries are swept at most once per TTL so the
// map only holds records written within roughly the last two TTLs.
func (m *Memory) Set(_ context.Context, rec models.ActionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.ttl {
		m.sweep(now)
	}

	m.records[rec.ShortID] = cachedRecord{
		Record:    rec,
		Timestamp: now,
	}
}

func (m *Memory) sweep(now time.Time) {
	for key, entry := range m.records {
		if now.Sub(entry.Timestamp) > m.ttl {
			delete(m.records, key)
		}
	}
	m.lastSweep = now
}

