package commands

import (
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	var (
		addr     string
		httpHost string
		httpPort int
		latency  time.Duration
		demo     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start an in-memory backend for local use",
		Long: `Serve the campaigns, content items and social posts REST resources from
memory. Point CONTENTCAL_API at it to try the client without a real backend.`,
		Example: `
contentcal serve --demo
contentcal serve --http-port 0 --latency 300ms
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host := strings.TrimSpace(httpHost)
			if host == "" {
				host = "127.0.0.1"
			}
			if httpPort < 0 || httpPort > 65535 {
				return fmt.Errorf("invalid http-port %d", httpPort)
			}

			listen := net.JoinHostPort(host, strconv.Itoa(httpPort))
			if addr != "" {
				listen = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := serve.Serve{
				Addr:    listen,
				Latency: latency,
				Demo:    demo,
				Logger:  logger(),
				OnListening: func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "contentcal backend listening on http://%s\n", a)
				},
			}
			return runner.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "host:port to listen on, overrides --http-host and --http-port")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface to listen on")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port to listen on (use 0 for random)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay every response, example: --latency=500ms")
	cmd.Flags().BoolVar(&demo, "demo", false, "seed a campaign with a few items around today")

	topLevel.AddCommand(cmd)
}
