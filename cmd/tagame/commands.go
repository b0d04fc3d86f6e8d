package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/bagtoad/tagame/internal/config"
	"github.com/bagtoad/tagame/internal/generator"
	"github.com/bagtoad/tagame/internal/rewriter"
)

func newGenerateCmd(opts *rootOpts) *cobra.Command {
	var (
		output    string
		extension string
		exclude   []string
		dryRun    bool
		verify    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <input> <tag>",
		Short: "Write a tag file containing <tag> for every image in <input>",
		Long: `generate scans <input> (not recursively) for jpg, jpeg, png, gif and webp
images and writes <tag> verbatim into <image name>.<extension> for each one.
Existing tag files are overwritten. A failed write is reported and skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extension(cmd, extension)
			if err != nil {
				return err
			}
			_, _, err = generator.Generate(cmd.Context(), cmd.OutOrStdout(), generator.Options{
				InputDir:  args[0],
				Tag:       args[1],
				OutputDir: output,
				Extension: ext,
				Exclude:   opts.exclude(exclude),
				DryRun:    dryRun,
				Verify:    verify,
			})
			if err != nil {
				return errors.Errorf("generating tag files: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory to write tag files to (default <input>)")
	cmd.Flags().StringVarP(&extension, "extension", "e", config.DefaultExtension, "Tag file extension")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Glob pattern of file names to ignore (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&verify, "verify", false, "Skip files whose content is not a decodable image")

	return cmd
}

// rewriteFlags are shared by replace and every insert mode.
type rewriteFlags struct {
	extension string
	exclude   []string
	write     bool
}

func (f *rewriteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.extension, "extension", "e", config.DefaultExtension, "Tag file extension")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "Glob pattern of file names to ignore (repeatable)")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "Write the new content back to the tag files")
}

func (f *rewriteFlags) options(opts *rootOpts, cmd *cobra.Command, input string) (rewriter.Options, error) {
	ext, err := opts.extension(cmd, f.extension)
	if err != nil {
		return rewriter.Options{}, err
	}
	return rewriter.Options{
		InputDir:  input,
		Extension: ext,
		Exclude:   opts.exclude(f.exclude),
		Write:     opts.write(cmd, f.write),
	}, nil
}

func newReplaceCmd(opts *rootOpts) *cobra.Command {
	var flags rewriteFlags

	cmd := &cobra.Command{
		Use:   "replace <input> <from> <to>",
		Short: "Replace every occurrence of <from> with <to> in the tag files of <input>",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rwOpts, err := flags.options(opts, cmd, args[0])
			if err != nil {
				return err
			}
			_, _, err = rewriter.Replace(cmd.Context(), cmd.OutOrStdout(), rwOpts, args[1], args[2])
			if err != nil {
				return errors.Errorf("replacing in tag files: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newInsertCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert text into the tag files of a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.Errorf("unknown insert mode %q (want start, end, before or after)", args[0])
			}
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newInsertModeCmd(opts, rewriter.Start, "start <input> <tag>", "Prepend <tag> to every tag file"),
		newInsertModeCmd(opts, rewriter.End, "end <input> <tag>", "Append <tag> to every tag file"),
		newInsertModeCmd(opts, rewriter.Before, "before <input> <tag> <before>", "Insert <tag> before the first occurrence of <before>"),
		newInsertModeCmd(opts, rewriter.After, "after <input> <tag> <after>", "Insert <tag> after the first occurrence of <after>"),
	)

	return cmd
}

func newInsertModeCmd(opts *rootOpts, kind rewriter.ModeKind, use, short string) *cobra.Command {
	var flags rewriteFlags

	nargs := 2
	if kind == rewriter.Before || kind == rewriter.After {
		nargs = 3
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := rewriter.Mode{Kind: kind}
			if nargs == 3 {
				mode.Anchor = args[2]
			}
			rwOpts, err := flags.options(opts, cmd, args[0])
			if err != nil {
				return err
			}
			_, _, err = rewriter.Insert(cmd.Context(), cmd.OutOrStdout(), rwOpts, args[1], mode)
			if err != nil {
				return errors.Errorf("inserting into tag files: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
