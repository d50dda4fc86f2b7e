package main

import (
	"fmt"
	"net"

	"github.com/chabad360/oscdeck/logging"
	"github.com/chabad360/oscdeck/osc"
	"github.com/spf13/cobra"
)

func newMonitorCmd(root *rootOptions) *cobra.Command {
	var (
		listen string
		match  string
	)
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print OSC messages received on a UDP address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			var filter *osc.Message
			if match != "" {
				filter = osc.NewMessage(match)
			}

			server := &osc.Server{
				Addr:   listen,
				Logger: logging.NewLogger("monitor", root.logLevel, cmd.ErrOrStderr()),
				Handler: func(msg *osc.Message, addr net.Addr) {
					if filter != nil && !filter.Match(msg.Address) {
						return
					}
					fmt.Fprintf(out, "%s %s\n", addr, msg)
				},
			}
			return server.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8000", "UDP address to listen on")
	cmd.Flags().StringVar(&match, "match", "", "Only print messages whose address matches this OSC pattern")
	return cmd
}
