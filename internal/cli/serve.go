package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/internal/server"
	"github.com/matzehuels/masonry/pkg/cache"
)

// apiKeyPrefix separates API cache entries from CLI entries in a shared
// backend.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command that runs the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Layout flags set the defaults for requests that leave an option unset. The
server shuts down gracefully on SIGINT or SIGTERM.

  POST   /v1/layout
  POST   /v1/boards/{board}/layout
  GET    /v1/boards/{board}/heights
  PUT    /v1/boards/{board}/heights
  DELETE /v1/boards/{board}/heights`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defaults, err := flags.options(cmd, c.Config.PipelineOptions())
			if err != nil {
				return err
			}
			if err := defaults.ValidateForLayout(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, flags.noCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			printDetail("Press Ctrl+C to stop")
			return server.New(runner, defaults, c.Logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	flags.register(cmd)

	return cmd
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
