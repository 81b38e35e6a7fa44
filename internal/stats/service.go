package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maisonnoir/storefront/internal/redisx"
)

type Service struct {
	Repo  Repo
	Redis *redis.Client

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Dashboard computes the four current-vs-previous-month metrics, serving a
// short-lived redis snapshot when one exists.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, redisx.KeyDashboardStats).Result(); err == nil && raw != "" {
			var d Dashboard
			if json.Unmarshal([]byte(raw), &d) == nil {
				return &d, nil
			}
		}
	}

	cur, prev := MonthWindows(s.now())

	revCur, err := s.Repo.Revenue(ctx, cur)
	if err != nil {
		return nil, err
	}
	revPrev, err := s.Repo.Revenue(ctx, prev)
	if err != nil {
		return nil, err
	}
	ordCur, err := s.Repo.OrderCount(ctx, cur)
	if err != nil {
		return nil, err
	}
	ordPrev, err := s.Repo.OrderCount(ctx, prev)
	if err != nil {
		return nil, err
	}
	prodCur, err := s.Repo.ProductCount(ctx, cur)
	if err != nil {
		return nil, err
	}
	prodPrev, err := s.Repo.ProductCount(ctx, prev)
	if err != nil {
		return nil, err
	}
	custCur, err := s.Repo.CustomerCount(ctx, cur)
	if err != nil {
		return nil, err
	}
	custPrev, err := s.Repo.CustomerCount(ctx, prev)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Revenue:     NewMetric(revCur.InexactFloat64(), revPrev.InexactFloat64()),
		Orders:      NewMetric(float64(ordCur), float64(ordPrev)),
		Products:    NewMetric(float64(prodCur), float64(prodPrev)),
		Customers:   NewMetric(float64(custCur), float64(custPrev)),
		GeneratedAt: s.now().UTC(),
	}

	if s.Redis != nil {
		if b, err := json.Marshal(d); err == nil {
			_ = s.Redis.Set(ctx, redisx.KeyDashboardStats, b, redisx.TTLStats).Err()
		}
	}
	return d, nil
}
