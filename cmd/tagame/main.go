package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/bagtoad/tagame/internal/config"
	"github.com/bagtoad/tagame/internal/report"
	"github.com/bagtoad/tagame/internal/tagfile"
)

const version = "v0.2.0"

// rootOpts holds global flags and the configuration they resolve to.
type rootOpts struct {
	configFile string
	verbose    bool
	noColor    bool

	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the command tree. Fatal errors are printed to stdout next to
// the per-file output; stderr only carries the log.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		report.Fatal(stdout, err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	rootCmd := &cobra.Command{
		Use:     "tagame",
		Short:   "Generate or manage tag files for images",
		Version: version,
		Long: `tagame manages sidecar tag files next to images: one plain text file per
image, named after the image with the tag extension (photo.jpg -> photo.txt).

generate creates the tag files. replace and insert edit existing ones; they
only print the new content unless --write is given (or write: true is set in
~/.tagame/config.yaml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default ~/.tagame/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newReplaceCmd(opts),
		newInsertCmd(opts),
	)

	return rootCmd
}

// setup installs the logger in the command context and loads the config.
func (o *rootOpts) setup(cmd *cobra.Command) error {
	if o.noColor {
		color.NoColor = true
	}

	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: color.NoColor}).
		Level(level).With().Timestamp().Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.cfg = cfg
	logger.Debug().Str("extension", cfg.Extension).Strs("exclude", cfg.Exclude).Bool("write", cfg.Write).Msg("config loaded")
	return nil
}

// extension returns the --extension flag when given, else the configured one.
// Flag values go through the same rule as the config file.
func (o *rootOpts) extension(cmd *cobra.Command, flagValue string) (string, error) {
	if !cmd.Flags().Changed("extension") {
		return o.cfg.Extension, nil
	}
	ext, err := tagfile.NormalizeExtension(flagValue)
	if err != nil {
		return "", errors.Errorf("--extension: %w", err)
	}
	return ext, nil
}

// write returns the --write flag when given, else the configured default.
func (o *rootOpts) write(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("write") {
		return flagValue
	}
	return o.cfg.Write
}

func (o *rootOpts) exclude(flagValue []string) []string {
	return append(append([]string{}, o.cfg.Exclude...), flagValue...)
}
