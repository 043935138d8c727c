package core

// busyTimer is the engine clock over the host's microsecond counter.
type busyTimer struct {
	clock Clock
}

func (t busyTimer) Now() float64 {
	return float64(t.clock()) / 1000000.0
}

// Sleep spins on the host clock. The engine runs inside the host's frame
// callback and must not give up the thread.
func (t busyTimer) Sleep(ms int) {
	t0 := t.clock()
	for (t.clock()-t0)/1000 < int64(ms) {
	}
}
