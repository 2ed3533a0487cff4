// Package invitation assembles a messaging invitation service.
//
// The service starts meetings through the links of an invitation resource
// and correlates each submission with the notification that later reports
// its result. Options can be populated from CLI flags or a YAML file:
//
//	options, _ := invitation.LoadOptions(ctx, "config.yaml")
//	srv, _ := invitation.New(options, resource)
//	_ = srv.Start(ctx)
//	http.Handle(options.Ingress.Path, srv.Handler())
//	meeting, err := srv.Invitation.StartMeeting(ctx, "sync", "")
package invitation
