// Command jsoracle dumps deterministic textual snapshots of a JavaScript
// source file: its token stream, syntax tree, scope graph and minified
// output. The snapshot goes to stdout, diagnostics to stderr, and the exit
// code reports the outcome: 0 clean, 1 usage/read/parse failure, 2 when the
// dump contained unsupported-node placeholders.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/viant/jsoracle/oracle"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: jsoracle [-config file.yaml] <mode> <path>

modes:
  lex|tokens   token stream dump
  ast|parse    syntax tree dump
  minify       minified output, names kept
  mangle       minified output with renamed locals
  scope        scope and binding analysis
  all          every section, best effort
`)
}

func main() {
	configLocation := flag.String("config", "", "optional YAML configuration file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		usage()
		os.Exit(1)
	}
	mode, err := oracle.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	config := oracle.DefaultConfig()
	if *configLocation != "" {
		if config, err = oracle.LoadConfig(ctx, *configLocation); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(oracle.New(config).Run(ctx, mode, args[1]))
}
