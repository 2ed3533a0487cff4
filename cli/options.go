package cli

import (
	"context"

	"github.com/viant/invitation"
	"github.com/viant/invitation/capability"
)

// Options defines the CLI commands.
type Options struct {
	Serve  ServeCommand  `command:"serve" description:"serve the callback endpoint and metrics"`
	Start  StartCommand  `command:"start" description:"start a meeting and wait for its invitation"`
	Bridge BridgeCommand `command:"bridge" description:"accept the invitation and bridge it into a meeting"`
}

// ServiceOptions are shared by every command.
type ServiceOptions struct {
	invitation.Options
	Addr     string `short:"a" long:"addr" description:"listen address" default:":8080"`
	Config   string `short:"c" long:"config" description:"options file location; replaces flag options"`
	Resource string `short:"r" long:"resource" description:"invitation resource location (yaml or json)"`
}

// load resolves options and the resource snapshot.
func (s *ServiceOptions) load(ctx context.Context) (*invitation.Options, *capability.Resource, error) {
	options := &s.Options
	if s.Config != "" {
		loaded, err := invitation.LoadOptions(ctx, s.Config)
		if err != nil {
			return nil, nil, err
		}
		options = loaded
	}
	var resource *capability.Resource
	if s.Resource != "" {
		var err error
		if resource, err = invitation.LoadResource(ctx, s.Resource); err != nil {
			return nil, nil, err
		}
	}
	return options, resource, nil
}
