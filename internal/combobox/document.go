package combobox

import tea "github.com/charmbracelet/bubbletea"

// Listener receives document-level messages while subscribed. It reports
// whether it consumed the message.
type Listener func(msg tea.Msg) (bool, tea.Cmd)

// Document is the shared event target that open widgets listen on. The
// host program forwards every key and mouse message to Dispatch before its
// own handling.
//
// Several widgets may hold subscriptions at once; every live listener sees
// each message, the same way document listeners do in a browser.
type Document struct {
	nextID    int
	listeners map[int]Listener
	order     []int
}

func NewDocument() *Document {
	return &Document{listeners: map[int]Listener{}}
}

// Subscription is a scoped listener registration. Release is idempotent.
type Subscription struct {
	doc *Document
	id  int
}

// Subscribe registers fn until the returned subscription is released.
func (d *Document) Subscribe(fn Listener) *Subscription {
	d.nextID++
	id := d.nextID
	d.listeners[id] = fn
	d.order = append(d.order, id)
	return &Subscription{doc: d, id: id}
}

// Release detaches the listener.
func (s *Subscription) Release() {
	if s == nil || s.doc == nil {
		return
	}
	d := s.doc
	delete(d.listeners, s.id)
	for i, id := range d.order {
		if id == s.id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	s.doc = nil
}

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.doc != nil
}

// Len returns the number of live listeners.
func (d *Document) Len() int {
	return len(d.listeners)
}

// Dispatch delivers msg to every live listener in subscription order.
// Listeners released during dispatch are skipped.
func (d *Document) Dispatch(msg tea.Msg) (bool, tea.Cmd) {
	if len(d.order) == 0 {
		return false, nil
	}
	ids := append([]int(nil), d.order...)
	consumed := false
	var cmds []tea.Cmd
	for _, id := range ids {
		fn, ok := d.listeners[id]
		if !ok {
			continue
		}
		handled, cmd := fn(msg)
		if handled {
			consumed = true
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return consumed, tea.Batch(cmds...)
}
