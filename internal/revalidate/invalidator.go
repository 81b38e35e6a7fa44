package revalidate

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/maisonnoir/storefront/internal/events"
	kafkax "github.com/maisonnoir/storefront/internal/kafka"
	"github.com/maisonnoir/storefront/internal/redisx"
)

// Invalidator consumes path-stale events and drops the matching rendered
// pages from the redis cache.
type Invalidator struct {
	Redis       *redis.Client
	ServiceName string
}

func (inv *Invalidator) Handle(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != EventPageRevalidate {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, inv.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, inv.Redis, dkey); exists {
		return nil
	}
	_ = inv.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[Payload](env.Payload)
	if err != nil {
		return err
	}
	for _, path := range p.Paths {
		key := fmt.Sprintf(redisx.KeyPage, path)
		if err := inv.Redis.Del(ctx, key).Err(); err != nil {
			log.Printf("invalidate %s: %v", path, err)
		}
	}
	return nil
}
