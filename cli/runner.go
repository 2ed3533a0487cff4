package cli

import (
	"github.com/jessevdk/go-flags"
)

// Run parses args and executes the selected command.
func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	return err
}
