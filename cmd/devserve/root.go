package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/devserve/internal/config"
	"github.com/f4ah6o/devserve/internal/server"
)

type runFunc func(ctx context.Context, cfg config.Config) error

type rootOptions struct {
	configPath string
	host       string
	port       int
	dir        string
	maxConns   int
	noBrowser  bool
	noCache    bool
	cleanURLs  bool
}

// resolve merges, in increasing priority: defaults, the config file and the
// flags given on the command line.
func (o *rootOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("dir") {
		cfg.Root = o.dir
	}
	if flags.Changed("max-conns") {
		cfg.MaxConnections = o.maxConns
	}
	if o.noBrowser {
		cfg.OpenBrowser = false
	}
	if o.noCache {
		cfg.NoCache = true
	}
	if o.cleanURLs {
		cfg.CleanURLs = true
	}
	return cfg, nil
}

func runServer(ctx context.Context, cfg config.Config) error {
	s, err := server.New(cfg)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

func newRootCmd(run runFunc) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "devserve",
		Short: "Static file server for local development",
		Long: fmt.Sprintf(`Serves the files of a directory over HTTP for local development.

Every response carries permissive CORS headers, and .js files are always served
as application/javascript so ES modules load in any browser. The server binds
all interfaces so phones on the same network can open the printed network URL.

Without flags it listens on %s:%d, serves the directory containing the
executable and opens the default browser.`, config.DefaultHost, config.DefaultPort),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       "0.1.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			return run(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	f.StringVar(&opts.host, "host", config.DefaultHost, "Address to bind")
	f.IntVarP(&opts.port, "port", "p", config.DefaultPort, "Port to serve on")
	f.StringVarP(&opts.dir, "dir", "d", "", "Directory to serve (default: directory of the executable)")
	f.IntVar(&opts.maxConns, "max-conns", 1, "Connections served at once, 0 for unlimited")
	f.BoolVar(&opts.noBrowser, "no-browser", false, "Do not open the browser")
	f.BoolVar(&opts.noCache, "no-cache", false, "Send Cache-Control: no-cache")
	f.BoolVar(&opts.cleanURLs, "clean-urls", false, "Serve /page from page.html when /page does not exist")
	return cmd
}
