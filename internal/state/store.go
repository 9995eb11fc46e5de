package state

import "sync"

// Store owns the single UiState snapshot. All writes go through Apply/Update and
// are serialised by one mutex that only guards the read-compute-swap step.
type Store struct {
	mu      sync.Mutex
	current UiState
	subs    map[*Subscription]struct{}
	closed  bool
}

// NewStore creates a store publishing initial as version 0.
func NewStore(initial UiState) *Store {
	return &Store{
		current: initial.Clone(),
		subs:    make(map[*Subscription]struct{}),
	}
}

// Read returns a copy of the current snapshot.
func (s *Store) Read() UiState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update applies transform and publishes the result.
func (s *Store) Update(transform func(UiState) UiState) UiState {
	next, _ := s.Apply(func(st UiState) (UiState, bool) {
		return transform(st), true
	})
	return next
}

// Apply runs transform on a private copy of the current snapshot. When it
// reports false nothing is published and the current snapshot is returned.
// transform must be pure: it runs with the store locked.
func (s *Store) Apply(transform func(UiState) (UiState, bool)) (UiState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := transform(s.current.Clone())
	if !changed {
		return s.current.Clone(), false
	}

	next.Version = s.current.Version + 1
	s.current = next

	published := next.Clone()
	for sub := range s.subs {
		sub.enqueue(published)
	}
	return s.current.Clone(), true
}

// Subscribe delivers the current snapshot and then every published snapshot,
// in order, to observer on its own goroutine until Unsubscribe or Close.
// A slow observer never blocks writers; its queue grows instead.
func (s *Store) Subscribe(observer func(UiState)) *Subscription {
	sub := &Subscription{
		store:    s,
		observer: observer,
		done:     make(chan struct{}),
	}
	sub.cond = sync.NewCond(&sub.mu)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.closed = true
		close(sub.done)
		return sub
	}
	s.subs[sub] = struct{}{}
	sub.enqueue(s.current.Clone())
	s.mu.Unlock()

	go sub.run()
	return sub
}

// Close stops every subscription. Later updates still apply but are not delivered.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[*Subscription]struct{})
	s.closed = true
	s.mu.Unlock()

	for sub := range subs {
		sub.stop()
	}
}

func (s *Store) remove(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

// Subscription is a registered snapshot observer.
type Subscription struct {
	store    *Store
	observer func(UiState)

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []UiState
	closed bool
	done   chan struct{}
}

// Unsubscribe stops delivery; snapshots still queued are dropped. Safe to call
// from inside the observer and more than once.
func (sub *Subscription) Unsubscribe() {
	sub.store.remove(sub)
	sub.stop()
}

// Done is closed once the delivery goroutine has exited.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

func (sub *Subscription) enqueue(st UiState) {
	sub.mu.Lock()
	if !sub.closed {
		sub.queue = append(sub.queue, st)
		sub.cond.Signal()
	}
	sub.mu.Unlock()
}

func (sub *Subscription) stop() {
	sub.mu.Lock()
	sub.closed = true
	sub.queue = nil
	sub.cond.Broadcast()
	sub.mu.Unlock()
}

func (sub *Subscription) run() {
	defer close(sub.done)
	for {
		sub.mu.Lock()
		for len(sub.queue) == 0 && !sub.closed {
			sub.cond.Wait()
		}
		if sub.closed {
			sub.mu.Unlock()
			return
		}
		next := sub.queue[0]
		sub.queue[0] = UiState{}
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		sub.observer(next)
	}
}
