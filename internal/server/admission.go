package server

import "sync"

// Admission bounds the number of concurrently admitted connections.
// A max of 0 means unlimited: Acquire never blocks. Waiters are woken by
// broadcast; any blocked waiter may proceed, strict FIFO is not promised.
type Admission struct {
	mu       sync.Mutex
	cond     *sync.Cond
	max      int
	admitted int
}

func NewAdmission(max int) *Admission {
	a := &Admission{max: max}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Acquire blocks until the admitted count is strictly below the maximum,
// then claims one slot.
func (a *Admission) Acquire() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for a.max > 0 && a.admitted >= a.max {
		a.cond.Wait()
	}
	a.admitted++
}

// Release returns one slot and wakes waiters. The count floors at zero;
// going below it would be a bookkeeping bug, not a runtime condition.
func (a *Admission) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.admitted > 0 {
		a.admitted--
	}
	a.cond.Broadcast()
}

// Admitted returns the current admitted count.
func (a *Admission) Admitted() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admitted
}
