// Command runec is the CLI front end over the compiler core: it reads
// sources from disk (the core's own external collaborator, spec.md §1),
// drives internal/compile, and reports either a finalized Unit's summary
// or its Diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/jbdutton/rune-go/internal/cache"
	"github.com/jbdutton/rune-go/internal/compile"
	"github.com/jbdutton/rune-go/internal/context"
	"github.com/jbdutton/rune-go/internal/diag"
	"github.com/jbdutton/rune-go/internal/source"
)

var (
	// Version info, set by ldflags during release builds.
	Version = "dev"
	Commit  = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
		bytecode    = flag.Bool("cache", true, "read/write the .rnc bytecode cache")
		warnings    = flag.Bool("warnings", true, "record non-fatal diagnostics")
		macros      = flag.Bool("macros", true, "expand user-defined macros")
		test        = flag.Bool("test", false, "retain test-attributed functions")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	flagSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })

	manifest, err := loadManifest("rune.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: rune.yaml: %v\n", red("error"), err)
		os.Exit(1)
	}

	opts := compile.Options{Bytecode: *bytecode, Warnings: *warnings, Macros: *macros, Test: *test}
	manifest.applyTo(&opts, flagSet)

	switch cmd := flag.Arg(0); cmd {
	case "build":
		files := sourceArgs(manifest)
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("error"))
			os.Exit(1)
		}
		for _, f := range files {
			buildFile(f, opts)
		}

	case "check":
		files := sourceArgs(manifest)
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("error"))
			os.Exit(1)
		}
		for _, f := range files {
			checkFile(f, opts)
		}

	case "ir":
		runIRRepl()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("%s %s (%s)\n", bold("runec"), Version, Commit)
}

func printHelp() {
	fmt.Println(bold("runec — bytecode compiler core CLI"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  runec <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>    compile a source file to a bytecode Unit\n", cyan("build"))
	fmt.Printf("  %s <file>    compile and report diagnostics only\n", cyan("check"))
	fmt.Printf("  %s            start an interactive IR evaluator\n", cyan("ir"))
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// sourceArgs resolves which files to act on: explicit trailing command-line
// arguments take precedence; with none given, it falls back to the
// rune.yaml manifest's sources list.
func sourceArgs(m *Manifest) []string {
	if flag.NArg() > 1 {
		return flag.Args()[1:]
	}
	if m != nil {
		return m.Sources
	}
	return nil
}

func loadFile(path string) (*source.Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	srcs := source.New()
	srcs.Add(path, string(data))
	return srcs, nil
}

func buildFile(path string, opts compile.Options) {
	srcs, err := loadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	opts.SourcePath = path
	opts.CachePath = cache.PathFor(path)

	u, diags := compile.Compile(srcs, context.New(), opts, nil)
	reportDiagnostics(diags)
	if u == nil {
		os.Exit(1)
	}

	fmt.Printf("%s %s: %d instructions, %d functions, %d types, %d static strings\n",
		green("✓"), path, len(u.Instructions), len(u.Functions), len(u.Types), len(u.StaticStrings))
}

func checkFile(path string, opts compile.Options) {
	opts.Bytecode = false
	srcs, err := loadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	_, diags := compile.Compile(srcs, context.New(), opts, nil)
	reportDiagnostics(diags)
	if diags.HasErrors() {
		os.Exit(1)
	}
	fmt.Printf("%s %s: no errors\n", green("✓"), path)
}

func reportDiagnostics(diags *diag.Diagnostics) {
	for _, r := range diags.Reports() {
		label := yellow("warning")
		if r.Severity == diag.SeverityError {
			label = red("error")
		}
		fmt.Fprintf(os.Stderr, "%s[%s]: %s\n", label, r.Code, r.Message)
	}
}
