package watcher

import "context"

// semaphore bounds how many transcripts are processed at once.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{slots: make(chan struct{}, capacity)}
}

// acquire blocks until a slot is free or ctx is done.
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
}

// full reports whether the next acquire would block.
func (s *semaphore) full() bool {
	return len(s.slots) == cap(s.slots)
}
