package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/influencegraph/internal/config"
	"github.com/matzehuels/influencegraph/pkg/buildinfo"
)

// configFlags maps flag names to the config keys they override. A flag is
// bound only on the command that defines it.
var configFlags = map[string]string{
	"config":   "config",
	"verbose":  "log.verbose",
	"log-file": "log.file",
	"cache":    "cache.backend",
	"quotes":   "quotes",
	"type":     "render.viz_type",
	"width":    "render.width",
	"scale":    "render.scale",
	"format":   "render.formats",
	"addr":     "server.addr",
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "influencegraph maps political and economic connections",
		Long: `influencegraph draws the connections between a search input, policies,
industry sectors and companies as a four-lane graph, with stock quotes and
cited evidence attached to nodes and edges.

Input is either graph data (nodes and edges) or an analysis report of
influence chains, as JSON or YAML.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: .influencegraph.toml, ~/.config/influencegraph/config.toml)")
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.String("log-file", "", "also write logs to a rotating file")
	pf.String("cache", "", "cache backend: file (default), redis, none")
	pf.String("quotes", "", "quote book TOML (default: built-in sample)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.quoteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun resolves the configuration for the executing command and sets up
// logging.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	if err := c.bindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.LoadConfig(c.viper)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cfg.Log.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if cfg.Log.File != "" && c.logFile == nil {
		f := openLogFile(cfg.Log)
		c.Logger.SetOutput(teeWriter(c.stderr, f))
		c.logFile = f
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) bindFlags(fs *pflag.FlagSet) error {
	for name, key := range configFlags {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := c.viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
