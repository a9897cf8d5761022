package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/civilian-dev/civilian/internal/config"
	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/router"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "civilian",
		Short: "Inspect and exercise resource trees",
		Long: `civilian loads a route table (civilian.json, civilian.yaml or
civilian.toml) and works with the resource tree it declares:

  • print the tree with its path parameters and handlers
  • match request paths the way the router does
  • build paths for handler ids
  • validate a route table before deploying it
  • generate Go constants for the mapped path patterns`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Route table file (default: search upwards for civilian.json)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		routesCmd(flags),
		matchCmd(flags),
		urlCmd(flags),
		checkCmd(flags),
		exportCmd(flags),
		genCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// logger returns a text logger on the command's stderr.
func (f *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// load reads the route table named by -c, or the nearest one above the
// working directory.
func (f *globalFlags) load() (*config.Config, error) {
	if f.configPath != "" {
		return config.LoadFile(f.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return config.Load(root)
}

// router loads the route table and builds its tree.
func (f *globalFlags) router(cmd *cobra.Command) (*router.Router, *config.Config, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, nil, err
	}
	logger := f.logger(cmd)
	tree, err := cfg.BuildTree(logger)
	if err != nil {
		return nil, nil, err
	}
	return router.New(tree, router.WithLogger(logger)), cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}
