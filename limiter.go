package paperpress

import (
	"time"
)

// externalLinkDelay is the minimum gap between two requests to the same
// host during external link checking.
const externalLinkDelay = 500 * time.Millisecond

// hostThrottle spaces out consecutive requests to the same host. Link
// checks run sequentially, so plain map bookkeeping is enough.
type hostThrottle struct {
	last  map[string]time.Time
	delay time.Duration

	// stubbed in tests
	now   func() time.Time
	sleep func(time.Duration)
}

func newHostThrottle(delay time.Duration) *hostThrottle {
	return &hostThrottle{
		last:  make(map[string]time.Time),
		delay: delay,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Wait blocks until the host may be contacted again, then records the hit.
func (h *hostThrottle) Wait(host string) {
	if prev, ok := h.last[host]; ok {
		if wait := h.delay - h.now().Sub(prev); wait > 0 {
			h.sleep(wait)
		}
	}
	h.last[host] = h.now()
}
