package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output and configuration flags.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// assetFlags holds page asset flags.
type assetFlags struct {
	style     string
	styleSet  bool // --style given explicitly, "" disables the stylesheet
	assetPath string
}

// jobFlags holds all flags of a build, rebuild or clean job.
type jobFlags struct {
	common  commonFlags
	workDir string
	force   bool
	assets  assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addAssetFlags adds page asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "page stylesheet name (\"\" = none)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseJobFlags parses job flags and returns the positional arguments.
func parseJobFlags(args []string, usage io.Writer) (*jobFlags, []string, error) {
	fs := flag.NewFlagSet("helpmaker", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &jobFlags{}

	fs.StringVarP(&f.workDir, "temp", "t", "", "working directory for staging trees")
	fs.BoolVar(&f.force, "force", false, "build even when the archive is up to date")
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.assets.styleSet = fs.Changed("style")

	return f, fs.Args(), nil
}
