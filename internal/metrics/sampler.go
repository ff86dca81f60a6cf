package metrics

import (
	"context"
	"log/slog"
	"time"
)

// EntryCounter is the slice of the repository the sampler needs.
type EntryCounter interface {
	CountEntries(ctx context.Context) (int64, error)
}

// Sampler periodically refreshes the feed_entries gauge so dashboards track
// feed growth without a query per scrape.
type Sampler struct {
	counter  EntryCounter
	interval time.Duration
	logger   *slog.Logger
}

// NewSampler creates a feed stats sampler.
func NewSampler(counter EntryCounter, interval time.Duration, logger *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sampler{
		counter:  counter,
		interval: interval,
		logger:   logger,
	}
}

// Run samples until ctx is cancelled. An initial sample is taken immediately.
func (s *Sampler) Run(ctx context.Context) {
	s.sample(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

func (s *Sampler) sample(ctx context.Context) {
	total, err := s.counter.CountEntries(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("feed stats sample failed", "error", err)
		}
		return
	}
	FeedEntries.Set(float64(total))
}
