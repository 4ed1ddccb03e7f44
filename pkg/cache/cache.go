// Package cache keeps resolved action records close to the resolver.
// Records never change once written, so entries only expire by age.
package cache

import (
	"context"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
)

const DefaultTTL = 10 * time.Minute

type Records interface {
	Get(ctx context.Context, shortID string) (models.ActionRecord, bool)
	Set(ctx context.Context, rec models.ActionRecord)
}

// Nop disables caching.
type Nop struct{}

func (Nop) Get(context.Context, string) (models.ActionRecord, bool) { return models.ActionRecord{}, false }
func (Nop) Set(context.Context, models.ActionRecord)                {}
