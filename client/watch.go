package client

import (
	"context"

	"github.com/randa-mu/drand-client-go/drand"
)

// Watch polls the chain for new rounds, delivering each verified beacon on
// the returned channel until ctx is done. Polling is aligned on the chain's
// round schedule; a failed poll is logged and retried at the next round. A
// round is delivered at most once, so a lagging relay serving stale latest
// beacons never duplicates output.
func (c *Client) Watch(ctx context.Context) <-chan *drand.Beacon {
	out := make(chan *drand.Beacon, 1)
	go func() {
		defer close(out)
		var last uint64
		for {
			next := c.info.RoundAt(c.clock.Now()) + 1
			wait := c.info.TimeOfRound(next).Sub(c.clock.Now())
			if wait < 0 {
				wait = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-c.clock.After(wait):
			}

			b, err := c.LatestRandomness(ctx)
			if err != nil {
				c.log.Warnw("", "client", "watch poll failed", "err", err)
				continue
			}
			if b.Round <= last {
				continue
			}
			last = b.Round
			select {
			case out <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
