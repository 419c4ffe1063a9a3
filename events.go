package playground

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map"
)

// Notifier fans lifecycle notifications out to subscribers. Channels are
// plain strings (see RunStartEvent / RunFinishEvent); subscribers on a
// channel are invoked in subscription order.
type Notifier struct {
	mu     sync.Mutex
	subs   *orderedmap.OrderedMap // event -> []*subscriber
	nextID int
}

type subscriber struct {
	id       int
	callback func(payload any)
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: orderedmap.New(),
	}
}

// Subscribe registers a callback on an event channel and returns a disposer
// which deregisters it. Disposing is idempotent; disposing during a
// notification pass does not affect the pass already in progress.
func (n *Notifier) Subscribe(event string, callback func(payload any)) func() {
	n.mu.Lock()
	n.nextID++
	sub := &subscriber{id: n.nextID, callback: callback}
	var list []*subscriber
	if existing, found := n.subs.Get(event); found {
		list = existing.([]*subscriber)
	}
	n.subs.Set(event, append(list, sub))
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.remove(event, sub.id)
		})
	}
}

// Emit invokes every subscriber of the event with the payload. The subscriber
// list is snapshotted before the first callback runs.
func (n *Notifier) Emit(event string, payload any) {
	n.mu.Lock()
	var snapshot []*subscriber
	if existing, found := n.subs.Get(event); found {
		snapshot = append(snapshot, existing.([]*subscriber)...)
	}
	n.mu.Unlock()

	for _, sub := range snapshot {
		sub.callback(payload)
	}
}

func (n *Notifier) remove(event string, id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	existing, found := n.subs.Get(event)
	if !found {
		return
	}
	list := existing.([]*subscriber)
	remaining := make([]*subscriber, 0, len(list))
	for _, sub := range list {
		if sub.id != id {
			remaining = append(remaining, sub)
		}
	}
	n.subs.Set(event, remaining)
}
