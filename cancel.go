package console

import (
	"sync"
	"sync/atomic"
)

// MenuCanceller ends a running menu from any goroutine. A canceller is
// single use: once cancelled it stays cancelled.
type MenuCanceller struct {
	done           chan struct{}
	once           sync.Once
	returnSelected atomic.Bool
	selected       atomic.Int64
}

func NewMenuCanceller() *MenuCanceller {
	return &MenuCanceller{done: make(chan struct{})}
}

// Cancel asks the menu to stop at its next poll. With returnSelected the menu
// returns the highlighted index instead of -1. Cancel returns the index
// highlighted at the time of the call.
func (c *MenuCanceller) Cancel(returnSelected bool) int {
	c.once.Do(func() {
		c.returnSelected.Store(returnSelected)
		close(c.done)
	})
	return c.Selected()
}

func (c *MenuCanceller) Done() <-chan struct{} {
	return c.done
}

func (c *MenuCanceller) Cancelled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *MenuCanceller) ReturnSelected() bool {
	return c.returnSelected.Load()
}

func (c *MenuCanceller) Selected() int {
	return int(c.selected.Load())
}

func (c *MenuCanceller) setSelected(index int) {
	c.selected.Store(int64(index))
}
