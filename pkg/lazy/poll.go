package lazy

import (
	"sync"
	"time"
)

// eagerPollInterval is how often an eager-showing poll re-checks the image
// handle for its natural size.
const eagerPollInterval = 300 * time.Millisecond

// poller is the small state object behind eager showing: one ticker and
// one idempotent stop, constructed before anything can reference them.
type poller struct {
	ticker *time.Ticker
	quit   chan struct{}
	once   sync.Once
}

func newPoller(interval time.Duration) *poller {
	return &poller{
		ticker: time.NewTicker(interval),
		quit:   make(chan struct{}),
	}
}

// run invokes step on every tick until step returns true or the poller is
// stopped. The poller stops itself when step finishes.
func (p *poller) run(step func() bool) {
	go func() {
		for {
			select {
			case <-p.ticker.C:
				if step() {
					p.stop()
					return
				}
			case <-p.quit:
				return
			}
		}
	}()
}

// stop halts the poll. Safe to call any number of times, from any
// goroutine.
func (p *poller) stop() {
	p.once.Do(func() {
		p.ticker.Stop()
		close(p.quit)
	})
}
