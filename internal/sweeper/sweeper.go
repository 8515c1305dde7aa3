package sweeper

import (
	"context"
	"log"
	"time"
)

// PinExpirer is the slice of the pin repository the sweeper needs
type PinExpirer interface {
	ExpireListings(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically flips expired listings back to not-for-sale. The same
// pass also runs best-effort before listing reads, so a pin never has to wait
// a full interval to leave the market.
type Sweeper struct {
	pins     PinExpirer
	interval time.Duration
}

// New creates a Sweeper with the given scan interval
func New(pins PinExpirer, interval time.Duration) *Sweeper {
	return &Sweeper{pins: pins, interval: interval}
}

// Sweep runs a single expiration pass and returns the number of listings
// closed
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	count, err := s.pins.ExpireListings(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("expired %d listing(s)", count)
	}
	return count, nil
}

// Run sweeps on a ticker until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				log.Printf("listing expiration sweep failed: %v", err)
			}
		}
	}
}
