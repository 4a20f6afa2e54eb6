package session

import "time"

// keepaliveTimer accumulates elapsed time and reports when a ping is
// due. The accumulator keeps its overshoot across firings so a late
// poll does not stretch the average interval.
type keepaliveTimer struct {
	period      time.Duration
	accumulated time.Duration
	last        time.Time
}

func newKeepaliveTimer(period time.Duration, now time.Time) *keepaliveTimer {
	return &keepaliveTimer{period: period, last: now}
}

// due advances the timer to now and reports whether a ping should be
// sent.
func (t *keepaliveTimer) due(now time.Time) bool {
	t.accumulated += now.Sub(t.last)
	t.last = now
	if t.accumulated >= t.period {
		t.accumulated -= t.period
		return true
	}
	return false
}
