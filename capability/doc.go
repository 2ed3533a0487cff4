// Package capability answers whether a messaging invitation currently exposes
// an executable hypermedia link for a given action, and where that link
// points.
//
// Availability is derived solely from link presence on the latest resource
// snapshot: a capability is supported when its link carries a non-blank href.
// Deprecated capabilities are declared as aliases of their replacement so that
// both resolve through the same link rule.
//
// Example:
//
//	resolver := capability.NewResolver("https://host/platformservice/v1/", resource)
//	if resolver.Supports(capability.StartMeeting) {
//		href, _ := resolver.Link(capability.StartMeeting)
//		fmt.Println(href)
//	}
package capability
