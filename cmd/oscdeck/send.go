package main

import (
	"strconv"

	"github.com/chabad360/oscdeck/logging"
	"github.com/chabad360/oscdeck/osc"
	"github.com/spf13/cobra"
)

func newSendCmd(root *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "send ADDRESS [ARG...]",
		Short: "Send a single OSC message",
		Long: `Send a single OSC message over UDP. Arguments that parse as integers are
sent as 'i', other numbers as 'f', true/false as 'T'/'F', nil as 'N' and
everything else as strings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("oscdeck", root.logLevel, cmd.ErrOrStderr())
			sender := osc.NewSender(logger)
			sender.Send(host, port, args[0], parseArgs(args[1:])...)
			sender.Wait()
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Destination host")
	cmd.Flags().IntVar(&port, "port", 8000, "Destination port")
	return cmd
}

func parseArgs(args []string) []interface{} {
	out := make([]interface{}, 0, len(args))
	for _, a := range args {
		out = append(out, parseArg(a))
	}
	return out
}

func parseArg(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "nil":
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
