package deferred

// Adapter abstracts the promise implementation the executor drives. The
// built-in SyncAdapter runs on a Scheduler from this package; hosts that
// integrate another promise library implement Adapter themselves.
//
// Values flowing through an Adapter are either plain values or the adapter's
// own deferred representation; IsDeferred tells them apart.
type Adapter interface {
	// IsDeferred reports whether v is this adapter's deferred representation.
	IsDeferred(v interface{}) bool
	// Resolved wraps a plain value as an already-fulfilled deferred.
	Resolved(v interface{}) interface{}
	// Rejected wraps an error as an already-rejected deferred.
	Rejected(err error) interface{}
	// Then chains callbacks onto a deferred value and returns the chained
	// deferred. Nil callbacks pass the outcome through.
	Then(v interface{}, onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) interface{}
	// All combines items, deferred or not, into one deferred slice.
	All(items []interface{}) interface{}
	// Await drives the adapter until v settles and returns its outcome.
	// Plain values return immediately.
	Await(v interface{}) (interface{}, error)
}

// SyncAdapter is the default Adapter: single-goroutine, cooperative, backed
// by a Scheduler.
type SyncAdapter struct {
	scheduler *Scheduler
}

func NewSyncAdapter() *SyncAdapter {
	return &SyncAdapter{scheduler: NewScheduler()}
}

// Scheduler exposes the underlying queue so resolvers can create their own
// pending values and schedule work with Run.
func (a *SyncAdapter) Scheduler() *Scheduler { return a.scheduler }

func (a *SyncAdapter) IsDeferred(v interface{}) bool {
	_, ok := v.(*Deferred)
	return ok
}

func (a *SyncAdapter) Resolved(v interface{}) interface{} {
	return a.scheduler.Resolved(v)
}

func (a *SyncAdapter) Rejected(err error) interface{} {
	return a.scheduler.Rejected(err)
}

func (a *SyncAdapter) Then(v interface{}, onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) interface{} {
	d, ok := v.(*Deferred)
	if !ok {
		d = a.scheduler.Resolved(v)
	}
	return d.Then(onFulfilled, onRejected)
}

func (a *SyncAdapter) All(items []interface{}) interface{} {
	return a.scheduler.All(items)
}

func (a *SyncAdapter) Await(v interface{}) (interface{}, error) {
	d, ok := v.(*Deferred)
	if !ok {
		return v, nil
	}
	return a.scheduler.Wait(d)
}

var _ Adapter = (*SyncAdapter)(nil)
