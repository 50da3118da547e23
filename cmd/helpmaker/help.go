package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: helpmaker <job> <outfile> [indir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile markdown help sources into an online-help archive.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Jobs:")
	fmt.Fprintln(w, "  build      Build outfile from indir when sources changed")
	fmt.Fprintln(w, "  rebuild    Clean, then build unconditionally")
	fmt.Fprintln(w, "  clean      Remove outfile and the working directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -t, --temp <dir>          Working directory (default: temporary)")
	fmt.Fprintln(w, "      --force               Build even when the archive is up to date")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --style <name>        Page stylesheet (\"\" = none)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 failure, 2 clean target has the wrong type,")
	fmt.Fprintln(w, "  3 image resource missing, 64 usage error")
}
