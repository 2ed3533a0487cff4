// Package messaging exposes the capabilities of a messaging invitation.
//
// StartMeeting submits a start request and waits for the online meeting
// invitation delivered out of band; AcceptAndBridge completes with the
// submission itself.
//
//	inv := messaging.New(resolver, dispatcher, messaging.WithCallbackDefaults(defaults))
//	if inv.Supports(capability.StartMeeting) {
//		meeting, err := inv.StartMeeting(ctx, "sync", "ctx-1")
//		...
//	}
package messaging
