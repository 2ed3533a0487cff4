package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/invitation"
	"github.com/viant/invitation/messaging"
)

// ServeCommand runs the callback endpoint until interrupted.
type ServeCommand struct {
	ServiceOptions
}

// Execute implements flags.Commander.
func (c *ServeCommand) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv, err := c.start(ctx)
	if err != nil {
		return err
	}
	defer srv.Close()
	l, err := listen(c.Addr, NewRouter(srv))
	if err != nil {
		return err
	}
	srv.Logger.Info("serving callbacks", "addr", c.Addr, "path", srv.Options.Ingress.Path)
	select {
	case err = <-l.errors:
		return err
	case <-ctx.Done():
		srv.Logger.Info("shutting down")
		return l.shutdown()
	}
}

// StartCommand starts a meeting, printing the invitation as JSON.
type StartCommand struct {
	ServiceOptions
	Subject         string `short:"s" long:"subject" description:"meeting subject"`
	CallbackContext string `long:"context" description:"callback context"`
}

// Execute implements flags.Commander.
func (c *StartCommand) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv, err := c.start(ctx)
	if err != nil {
		return err
	}
	defer srv.Close()
	l, err := listen(c.Addr, NewRouter(srv))
	if err != nil {
		return err
	}
	defer l.shutdown()
	meeting, err := srv.Invitation.StartMeeting(ctx, c.Subject, c.CallbackContext)
	if err != nil {
		return err
	}
	return printJSON(meeting)
}

// BridgeCommand accepts the invitation and bridges it into a meeting.
type BridgeCommand struct {
	ServiceOptions
	MeetingURL  string `short:"m" long:"meeting-url" description:"meeting URL" required:"true"`
	DisplayName string `short:"d" long:"display-name" description:"local user display name"`
}

// Execute implements flags.Commander.
func (c *BridgeCommand) Execute(args []string) error {
	ctx := messaging.WithLoggingContext(context.Background(), "cli-bridge")
	srv, err := c.create()
	if err != nil {
		return err
	}
	defer srv.Close()
	if err = srv.Invitation.AcceptAndBridge(ctx, c.MeetingURL, c.DisplayName); err != nil {
		return err
	}
	fmt.Println("bridged")
	return nil
}

func (s *ServiceOptions) create() (*invitation.Service, error) {
	options, resource, err := s.load(context.Background())
	if err != nil {
		return nil, err
	}
	return invitation.New(options, resource)
}

func (s *ServiceOptions) start(ctx context.Context) (*invitation.Service, error) {
	options, resource, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := invitation.New(options, resource)
	if err != nil {
		return nil, err
	}
	if err = srv.Start(ctx); err != nil {
		_ = srv.Close()
		return nil, err
	}
	return srv, nil
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
