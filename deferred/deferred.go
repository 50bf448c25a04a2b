// Package deferred implements the cooperative deferred-value machinery the
// executor runs on: a settle-once promise, a FIFO task queue draining it, and
// an Adapter seam for hosts that bring their own promise implementation.
//
// Nothing here spawns goroutines. Work only happens while someone pumps the
// scheduler, so a single execution stays on one goroutine and completion
// order is deterministic.
package deferred

import "fmt"

// State is the lifecycle of a Deferred.
type State int

const (
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scheduler owns a FIFO queue of tasks. All deferred callbacks run through
// it; a task never runs re-entrantly inside the call that scheduled it.
type Scheduler struct {
	queue []func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Run enqueues f for the next pump of the queue.
func (s *Scheduler) Run(f func()) {
	s.queue = append(s.queue, f)
}

func (s *Scheduler) pump() bool {
	if len(s.queue) == 0 {
		return false
	}
	task := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	task()
	return true
}

// New returns a pending Deferred attached to this scheduler.
func (s *Scheduler) New() *Deferred {
	return &Deferred{s: s}
}

// Resolved returns a Deferred already fulfilled with v. If v is itself a
// Deferred, it is adopted.
func (s *Scheduler) Resolved(v interface{}) *Deferred {
	d := s.New()
	d.Resolve(v)
	return d
}

// Rejected returns a Deferred already rejected with err.
func (s *Scheduler) Rejected(err error) *Deferred {
	d := s.New()
	d.Reject(err)
	return d
}

// Deferred is a settle-once container for a value that may not exist yet.
type Deferred struct {
	s        *Scheduler
	state    State
	value    interface{}
	reason   error
	adopted  bool
	handlers []func(value interface{}, reason error)
}

func (d *Deferred) State() State { return d.state }

// Value returns the fulfillment value; it is meaningful only when State is
// Fulfilled.
func (d *Deferred) Value() interface{} { return d.value }

// Reason returns the rejection reason; it is meaningful only when State is
// Rejected.
func (d *Deferred) Reason() error { return d.reason }

// Resolve fulfills d with v. If v is itself a Deferred, d adopts its eventual
// outcome instead. Settling is one-shot: later calls are ignored.
func (d *Deferred) Resolve(v interface{}) {
	if d.state != Pending || d.adopted {
		return
	}
	if inner, ok := v.(*Deferred); ok {
		d.adopted = true
		inner.subscribe(func(value interface{}, reason error) {
			d.adopted = false
			if reason != nil {
				d.Reject(reason)
				return
			}
			d.settle(value, nil)
		})
		return
	}
	d.settle(v, nil)
}

// Reject rejects d. Settling is one-shot: later calls are ignored.
func (d *Deferred) Reject(err error) {
	if d.state != Pending || d.adopted {
		return
	}
	d.settle(nil, err)
}

func (d *Deferred) settle(value interface{}, reason error) {
	if reason != nil {
		d.state = Rejected
		d.reason = reason
	} else {
		d.state = Fulfilled
		d.value = value
	}
	handlers := d.handlers
	d.handlers = nil
	for _, h := range handlers {
		h := h
		d.s.Run(func() { h(d.value, d.reason) })
	}
}

// subscribe registers cb to run on the scheduler once d settles.
func (d *Deferred) subscribe(cb func(value interface{}, reason error)) {
	if d.state != Pending {
		d.s.Run(func() { cb(d.value, d.reason) })
		return
	}
	d.handlers = append(d.handlers, cb)
}

// Then chains onto d. The returned Deferred settles with the result of the
// matching callback; a nil callback passes the outcome through. A rejection
// callback returning a nil error recovers.
func (d *Deferred) Then(onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) *Deferred {
	out := d.s.New()
	d.subscribe(func(value interface{}, reason error) {
		if reason != nil {
			if onRejected == nil {
				out.Reject(reason)
				return
			}
			v, err := onRejected(reason)
			if err != nil {
				out.Reject(err)
				return
			}
			out.Resolve(v)
			return
		}
		if onFulfilled == nil {
			out.Resolve(value)
			return
		}
		v, err := onFulfilled(value)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(v)
	})
	return out
}

// All returns a Deferred that fulfills with the values of items, in order,
// once every Deferred among them fulfills. It rejects with the first
// rejection. Non-deferred items pass through unchanged.
func (s *Scheduler) All(items []interface{}) *Deferred {
	out := s.New()
	results := make([]interface{}, len(items))
	pending := 0
	for i, item := range items {
		d, ok := item.(*Deferred)
		if !ok {
			results[i] = item
			continue
		}
		pending++
		i := i
		d.subscribe(func(value interface{}, reason error) {
			if reason != nil {
				out.Reject(reason)
				return
			}
			results[i] = value
			pending--
			if pending == 0 {
				out.Resolve(results)
			}
		})
	}
	if pending == 0 {
		out.Resolve(results)
	}
	return out
}

// Wait pumps the scheduler until d settles or the queue runs dry. A Deferred
// still pending with nothing left to run means some code path forgot to
// settle it; that is a programming error, reported as a rejection.
func (s *Scheduler) Wait(d *Deferred) (interface{}, error) {
	for d.state == Pending {
		if !s.pump() {
			break
		}
	}
	switch d.state {
	case Fulfilled:
		return d.value, nil
	case Rejected:
		return nil, d.reason
	}
	return nil, fmt.Errorf("deferred value never settled")
}
