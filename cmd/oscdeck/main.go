package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chabad360/oscdeck/logging"
	"github.com/chabad360/oscdeck/osc"
	"github.com/chabad360/oscdeck/plugin"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

type rootOptions struct {
	port          int
	pluginUUID    string
	registerEvent string
	info          string
	logLevel      string
	logFile       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:     "oscdeck",
		Short:   "Translate control surface events into OSC messages",
		Long:    `Connects to the device host, registers as a plugin and sends OSC over UDP for every knob turn, knob press and key press.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlugin(cmd.Context(), opts, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.port, "port", 0, "Port of the device host channel (required)")
	flags.StringVar(&opts.pluginUUID, "pluginUUID", "", "Plugin identifier assigned by the device host (required)")
	flags.StringVar(&opts.pluginUUID, "uuid", "", "Alias for --pluginUUID")
	flags.StringVar(&opts.registerEvent, "registerEvent", "registerPlugin", "Event name of the registration message")
	flags.StringVar(&opts.info, "info", "{}", "Device host information (JSON)")
	flags.StringVar(&opts.logFile, "log-file", logging.DefaultLogFile(), "File to append the log to, empty to disable")
	_ = flags.MarkHidden("uuid")

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logging.GetLogLevel(), "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newSendCmd(opts), newMonitorCmd(opts))
	return cmd
}

func runPlugin(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	out := stderr
	if opts.logFile != "" {
		f, err := logging.OpenLogFile(opts.logFile)
		if err != nil {
			fmt.Fprintf(stderr, "oscdeck: logging to stderr only: %v\n", err)
		} else {
			defer f.Close()
			out = io.MultiWriter(stderr, f)
		}
	}
	logger := logging.NewLogger("oscdeck", opts.logLevel, out)
	logger.Info("starting", "argv", strings.Join(os.Args, " "))

	if opts.port <= 0 || opts.pluginUUID == "" {
		logger.Error("missing required arguments", "port", opts.port, "pluginUUID", opts.pluginUUID)
		return errors.New("--port and --pluginUUID are required")
	}
	if name := pluginName(opts.info, logger); name != "" {
		logger = logger.Named(name)
	}

	conn, err := plugin.Dial(ctx, opts.port, logger.Named("channel"))
	if err != nil {
		logger.Error("cannot reach device host", "port", opts.port, "error", err)
		return err
	}
	defer conn.Close()

	return serve(ctx, conn, opts, logger)
}

// serve registers on conn and dispatches events until ctx is cancelled or the
// channel fails. In-flight sends are drained before it returns.
func serve(ctx context.Context, conn *plugin.Conn, opts *rootOptions, logger hclog.Logger) error {
	sender := osc.NewSender(logger.Named("osc"))
	defer sender.Wait()

	if err := conn.Register(opts.registerEvent, opts.pluginUUID); err != nil {
		logger.Error("registration failed", "event", opts.registerEvent, "error", err)
		return err
	}
	return conn.Run(ctx, plugin.NewDispatcher(sender, logger.Named("dispatch")))
}

// pluginName extracts plugin.uuid from the device host information.
func pluginName(info string, logger hclog.Logger) string {
	var v struct {
		Plugin struct {
			UUID string `json:"uuid"`
		} `json:"plugin"`
	}
	if err := json.Unmarshal([]byte(info), &v); err != nil {
		logger.Warn("ignoring malformed --info", "error", err)
		return ""
	}
	return v.Plugin.UUID
}

// normalizeArgs turns the single-dash long flags device hosts pass
// (-port 28196 -pluginUUID ...) into the double-dash form. Only flags declared
// on cmd are rewritten, and everything from the first positional argument or
// subcommand on is passed through untouched.
func normalizeArgs(cmd *cobra.Command, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") || len(a) == 1 {
			return append(out, args[i:]...)
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
		if f == nil {
			out = append(out, a)
			continue
		}
		if a[1] != '-' && len(name) > 1 {
			a = "-" + a
		}
		out = append(out, a)
		if !hasValue && f.Value.Type() != "bool" && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newRootCmd()
	cmd.SetArgs(normalizeArgs(cmd, os.Args[1:]))
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
