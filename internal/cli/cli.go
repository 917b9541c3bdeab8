// Package cli implements the radioguide command-line interface.
//
// # Commands
//
//   - resize: crop and resample a photo to a print aspect ratio
//   - guide: overlay the frequency table on a background photo
//   - completion: shell completion scripts
//
// # Configuration
//
// Defaults come from the pipeline package. A TOML file passed with --config
// overrides them, and flags set on the command line override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// writes to stderr; results are printed to stdout.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radioguide/pkg/buildinfo"
	"github.com/matzehuels/radioguide/pkg/config"
	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
	"github.com/matzehuels/radioguide/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "radioguide"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // user-facing results
	Err    io.Writer // user-facing errors

	configPath string
	verbose    bool
}

// New creates a new CLI instance. Results go to out; logs and errors go
// to errOut.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errOut, level),
		Out:    out,
		Err:    errOut,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Radioguide makes printable frequency guides",
		Long: `Radioguide crops photos to sticker print ratios and overlays a two-column
table of radio frequencies and station names on them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	// Register all subcommands
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.guideCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ReportError prints err as a user-facing message. The full error chain is
// logged at debug level.
func (c *CLI) ReportError(err error) {
	c.Logger.Debug("command failed", "err", err, "code", rgerrors.GetCode(err))
	c.printError("%s", rgerrors.UserMessage(err))
}

// =============================================================================
// Runner & Config
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadConfig returns the config file named by --config, or an empty config.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}
