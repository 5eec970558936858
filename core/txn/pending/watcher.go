package pending

import "sync"

// Event is the notification of a change of a pending transaction.
type Event struct {
	ID string
	// Signed is the number of slots that have a proof. It is zero when the
	// transaction is deleted.
	Signed  int
	Deleted bool
}

// Observer is the interface to implement to watch the pending transactions.
type Observer interface {
	NotifyCallback(event Event)
}

// watcher keeps the observers of a store.
type watcher struct {
	sync.RWMutex

	observers map[Observer]struct{}
}

func newWatcher() *watcher {
	return &watcher{
		observers: make(map[Observer]struct{}),
	}
}

func (w *watcher) add(observer Observer) {
	w.Lock()
	w.observers[observer] = struct{}{}
	w.Unlock()
}

func (w *watcher) remove(observer Observer) {
	w.Lock()
	delete(w.observers, observer)
	w.Unlock()
}

// notify notifies the observers one after each other.
func (w *watcher) notify(event Event) {
	w.RLock()
	defer w.RUnlock()

	for obs := range w.observers {
		obs.NotifyCallback(event)
	}
}
