// Command luat is the front-end driver: it reads a .luat source file,
// tokenizes and parses it, and on success writes the token and AST dumps
// (or, for "watch", keeps re-parsing on every save).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/luat-lang/luat/internal/arena"
	"github.com/luat-lang/luat/internal/cli"
	"github.com/luat-lang/luat/internal/debugdump"
	"github.com/luat-lang/luat/internal/lexer"
	"github.com/luat-lang/luat/internal/manifest"
	"github.com/luat-lang/luat/internal/parser"
	"github.com/luat-lang/luat/internal/strpool"
	"github.com/luat-lang/luat/internal/watch"
)

// Arena sizes mirror the original front-end's MiB(1) permanent arena and
// 50 KiB-bucket string pool.
const (
	defaultArenaBytes = 1 << 20
	defaultPoolBuckets = (50 * 1024) / 8
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		cli.PrintVersion("luat", false)
	case "parse", "dump":
		runParse(args)
	case "watch":
		runWatch(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", sub)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage: luat <command> [arguments]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  parse <file.luat>   tokenize and parse a source file")
	fmt.Println("  watch <file.luat>   re-parse a source file on every save")
	fmt.Println("  version             print version information")
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	tokensOut := fs.String("tokens-out", "", "write the token dump to this path (default: stdout)")
	astOut := fs.String("ast-out", "", "write the AST dump to this path (default: stdout)")
	manifestPath := fs.String("manifest", "", "check this project's luat.manifest language constraint first")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: luat parse [flags] <file.luat>")
		os.Exit(2)
	}

	if *manifestPath != "" {
		m, err := manifest.Load(*manifestPath)
		if err != nil {
			cli.ExitWithError("%v", err)
		}

		if err := m.CheckLanguage(cli.Version); err != nil {
			cli.ExitWithError("%v", err)
		}
	}

	source, err := os.ReadFile(rest[0])
	if err != nil {
		cli.ExitWithError("could not open file: %v", err)
	}

	a := arena.New(defaultArenaBytes)
	pool := strpool.New(a, defaultPoolBuckets)

	tokens := lexer.Tokenize(source, pool)
	root, diags := parser.Parse(tokens, a)

	if !diags.Empty() {
		fmt.Println("Parser Error.")
		diags.Fprint(os.Stderr)
		os.Exit(1)
	}

	writeDump(*tokensOut, func(w *os.File) { debugdump.Tokens(w, tokens) })
	writeDump(*astOut, func(w *os.File) { debugdump.AST(w, root) })
}

func writeDump(path string, dump func(*os.File)) {
	if path == "" {
		dump(os.Stdout)

		return
	}

	f, err := os.Create(path)
	if err != nil {
		cli.ExitWithError("could not create %q: %v", path, err)
	}
	defer f.Close()

	dump(f)
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: luat watch <file.luat>")
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "luat watch: ", log.LstdFlags)

	w, err := watch.New(rest[0], logger)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	defer w.Close()

	fmt.Printf("watching %s (ctrl-c to stop)\n", rest[0])

	w.Run(func(r watch.Result) {
		watch.Fprint(os.Stdout, r)
	})
}
