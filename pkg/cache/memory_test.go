package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "abc")
	assert.False(t, ok)

	rec := models.ActionRecord{ShortID: "abc", ActionType: models.ActionTip}
	c.Set(ctx, rec)

	got, ok := c.Get(ctx, "abc")
	assert.True(t, ok)
	assert.Equal(t, rec, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "abc")
	assert.False(t, ok)
	assert.Empty(t, c.records)
}

func TestMemorySetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		c.Set(ctx, models.ActionRecord{ShortID: fmt.Sprintf("id%d", i), ActionType: models.ActionTip})
	}
	assert.Len(t, c.records, 1000)

	now = now.Add(time.Hour)
	c.Set(ctx, models.ActionRecord{ShortID: "fresh", ActionType: models.ActionTip})

	assert.Len(t, c.records, 1)
	_, ok := c.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestNop(t *testing.T) {
	var c Records = Nop{}
	c.Set(context.Background(), models.ActionRecord{ShortID: "abc"})
	_, ok := c.Get(context.Background(), "abc")
	assert.False(t, ok)
}
