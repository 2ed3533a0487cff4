// Package notification matches asynchronously delivered operation results to
// pending operations.
//
// The Matcher is the ingestion contract: whatever receives pushed events
// calls Deliver (or OnNotification for JSON-RPC envelopes) on its own
// goroutine. Events whose operation id has no pending entry are dropped.
// Handler and Relay are optional ingestion adapters: Handler accepts events
// over HTTP, Relay forwards them between instances through Redis pub/sub.
package notification
