package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	helpmaker "github.com/alnah/go-helpmaker"
	"github.com/alnah/go-helpmaker/internal/config"
	"github.com/alnah/go-helpmaker/internal/logging"
)

// ErrUsage indicates invalid command-line arguments.
var ErrUsage = errors.New("invalid arguments")

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage(deps.Stdout)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(deps.Stdout, "helpmaker %s\n", Version)
		return ExitSuccess
	}

	flags, positional, err := parseJobFlags(args, deps.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Run 'helpmaker help' for usage.")
		return ExitUsage
	}

	job, err := parseJob(positional)
	if err == nil {
		err = runJob(ctx, job, flags, deps)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// parseJob turns "<job> <outfile> [indir]" into a Job.
func parseJob(positional []string) (helpmaker.Job, error) {
	if len(positional) == 0 {
		return helpmaker.Job{}, fmt.Errorf("%w: missing job", ErrUsage)
	}
	jobType, err := helpmaker.ParseJobType(positional[0])
	if err != nil {
		return helpmaker.Job{}, err
	}

	rest := positional[1:]
	switch {
	case jobType == helpmaker.JobClean && (len(rest) == 1 || len(rest) == 2):
	case len(rest) == 2:
	default:
		return helpmaker.Job{}, fmt.Errorf("%w: %s expects <outfile> <indir>, got %d argument(s)", ErrUsage, jobType, len(rest))
	}

	job := helpmaker.Job{Type: jobType, OutFile: rest[0]}
	if len(rest) == 2 {
		job.InputDir = rest[1]
	}
	return job, nil
}

// runJob loads configuration, builds the service and runs the job.
func runJob(ctx context.Context, job helpmaker.Job, flags *jobFlags, deps *Dependencies) error {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return withHint(fmt.Errorf("loading config: %w", err), hintFor(err, job, cfg, flags))
		}
		cfg = loaded
	}

	logger, err := newLogger(cfg, &flags.common, deps)
	if err != nil {
		return err
	}

	svc, err := helpmaker.New(serviceOptions(cfg, flags, logger)...)
	if err != nil {
		return withHint(err, hintFor(err, job, cfg, flags))
	}

	result, err := svc.Run(ctx, job)
	if err != nil {
		return withHint(err, hintFor(err, job, cfg, flags))
	}

	if !flags.common.quiet {
		printResult(deps.Stdout, job, result)
	}
	return nil
}

// newLogger builds the logger from config, with -q and -v taking precedence
// over the configured level and --log-format over the configured format.
func newLogger(cfg *config.Config, f *commonFlags, deps *Dependencies) (*slog.Logger, error) {
	if f.quiet && f.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: deps.Stderr,
	}
	switch {
	case f.quiet:
		opts.Level = "warn"
	case f.verbose:
		opts.Level = "debug"
	}
	if f.logFormat != "" {
		opts.Format = f.logFormat
	}

	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return logger, nil
}

// serviceOptions merges CLI flags into the configuration (CLI wins).
func serviceOptions(cfg *config.Config, f *jobFlags, logger *slog.Logger) []helpmaker.Option {
	opts := []helpmaker.Option{
		helpmaker.WithConfig(cfg),
		helpmaker.WithLogger(logger),
		helpmaker.WithForce(f.force),
	}
	if f.workDir != "" {
		opts = append(opts, helpmaker.WithWorkDir(f.workDir))
	}
	if f.assets.styleSet {
		opts = append(opts, helpmaker.WithStyle(f.assets.style))
	}
	if f.assets.assetPath != "" {
		opts = append(opts, helpmaker.WithAssetPath(f.assets.assetPath))
	}
	return opts
}
