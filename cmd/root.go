package cmd

import (
	"errors"
	"os"
	"time"

	"bin2carray/pkg/carray"
	"bin2carray/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// rootOptions holds the raw flag values of the root command.
type rootOptions struct {
	config string
	inputs *inputList
	flags  carray.Arguments
}

// NewRootCmd builds the bin2carray command tree.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bin2carray -i <glob>... [-o <out.c>] [-p <prefix>]",
		Short: "bin2carray converts binary files into C byte arrays",
		Long: `bin2carray converts binary files into C source/header pairs holding
const uint8_t arrays, for embedding images and other blobs in firmware builds.

With --out every input is written to one source/header pair. Without it each
input gets its own pair next to it, named after the input with its extension
replaced by .c and .h. Arguments after the flags are treated as more inputs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, positional []string) error {
			err := runGenerate(cmd, opts, positional, logger)
			if err != nil && !errors.Is(err, carray.ErrUsage) {
				cmd.SilenceUsage = true
			}
			return err
		},
	}

	f := rootCmd.Flags()
	opts.inputs = newInputList(f)
	f.VarP(opts.inputs, "in", "i", "input file(s) to convert, glob patterns allowed (repeatable)")
	f.StringVarP(&opts.flags.Output, "out", "o", "", "combined output source file; the header uses the same name with .h")
	f.StringVarP(&opts.flags.Prefix, "prefix", "p", "", "array variable prefix")
	f.BoolVarP(&opts.flags.Verbose, "verbose", "v", false, "verbose output")
	f.StringArrayVarP(&opts.flags.Excludes, "exclude", "x", nil, "gitignore-style pattern of inputs to skip (repeatable)")
	f.StringVar(&opts.flags.PlatformInclude, "platform-include", carray.DefaultPlatformInclude, "header included by generated source files")
	f.StringVar(&opts.flags.Copyright, "copyright", "", "copyright holder written in the generated banner")
	f.StringVarP(&opts.config, "config", "c", "", "YAML file providing defaults for the flags above")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

// runGenerate merges the config file with the explicitly set flags and runs the generator.
func runGenerate(cmd *cobra.Command, opts *rootOptions, positional []string, logger *zap.Logger) error {
	args := &carray.Arguments{}
	if opts.config != "" {
		loaded, err := carray.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		args = loaded
		logger.Debug("Loaded config file", zap.String("file", opts.config))
	}

	args.Patterns = append(args.Patterns, positional...)
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "in":
			args.Patterns = opts.inputs.merge(positional)
		case "out":
			args.Output = opts.flags.Output
		case "prefix":
			args.Prefix = opts.flags.Prefix
		case "verbose":
			args.Verbose = opts.flags.Verbose
		case "exclude":
			args.Excludes = opts.flags.Excludes
		case "platform-include":
			args.PlatformInclude = opts.flags.PlatformInclude
		case "copyright":
			args.Copyright = opts.flags.Copyright
		}
	})
	args.ApplyDefaults()

	if args.Verbose {
		logging.SetDebug(true)
	}

	bctx, err := carray.NewBuildContext(os.Args, time.Now())
	if err != nil {
		return err
	}

	_, err = carray.Run(args, bctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
	return err
}
