// Package main provides the ninja command line: training, prediction and
// evaluation of feed-forward networks on sparse example files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const version = "v0.1.0"

// errUsage marks command-line mistakes; main exits with status 2 for them.
var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("ninja: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(2)
	}
	stop()
	log.Fatalf("%v", err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return fmt.Errorf("missing command: %w", errUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "train":
		return runTrain(ctx, rest, stdout, stderr)
	case "predict":
		return runPredict(rest, stdout, stderr)
	case "evaluate":
		return runEvaluate(rest, stdout, stderr)
	case "mnist":
		return runMNIST(rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "ninja %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ninja - feed-forward network trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      train a network on an examples file and write the model")
	fmt.Fprintln(w, "  predict    MODEL EXAMPLES RESPONSE [--verbose]  write top predictions")
	fmt.Fprintln(w, "  evaluate   report the accuracy of a model on labeled examples")
	fmt.Fprintln(w, "  mnist      convert MNIST IDX files to the examples format")
	fmt.Fprintln(w, "  version    show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'ninja <command> -h' for command flags.")
}
