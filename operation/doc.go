// Package operation correlates dispatched actions with results delivered
// out-of-band.
//
// A Dispatcher mints an operation id, registers a Pending entry in the
// Registry, and only then submits the request, so a notification racing the
// HTTP response always finds its entry. Each Pending holds a write-once slot:
// the first resolution wins and the entry leaves the registry at that moment.
// Await blocks until the slot resolves, the deadline measured from
// registration passes, or the caller's context ends; the last two evict the
// entry so late notifications are dropped instead of matched.
package operation
