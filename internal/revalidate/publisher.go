package revalidate

import (
	"github.com/maisonnoir/storefront/internal/events"
	kafkax "github.com/maisonnoir/storefront/internal/kafka"
)

const (
	Topic               = "page.revalidate"
	EventPageRevalidate = "PageRevalidate"
)

type Payload struct {
	Paths []string `json:"paths"`
}

// Publisher emits fire-and-forget path-stale events. A dropped event means
// a stale cached page until its TTL runs out, never a failed request.
type Publisher struct {
	Producer *kafkax.Producer
	Service  string
}

func (p *Publisher) Paths(paths ...string) {
	if p == nil || p.Producer == nil || len(paths) == 0 {
		return
	}
	ev := events.New(EventPageRevalidate, p.Service, "", "", kafkax.MustMarshal(Payload{Paths: paths}))
	p.Producer.Publish(events.PartitionKey(paths[0]), kafkax.MustMarshal(ev))
}
