package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gruppe-adler/rasterscene/internal/cli"
)

type command struct {
	name        string
	description string
	run         func(ctx context.Context, set *flag.FlagSet, args []string) error
}

var subCommands []command

func init() {
	subCommands = []command{
		{"show", "Build the scene and attach a raster package as its elevation source.", func(ctx context.Context, s *flag.FlagSet, args []string) error {
			return cli.Show(ctx, s, args, os.Stdin, os.Stdout)
		}},
		{"inspect", "Print metadata and peaks of a raster package.", func(ctx context.Context, s *flag.FlagSet, args []string) error {
			return cli.Inspect(s, args, os.Stdout)
		}},
		{"preview", "Build Terrain-RGB preview images of a raster package.", func(ctx context.Context, s *flag.FlagSet, args []string) error {
			return cli.Preview(ctx, s, args, os.Stdout)
		}},
		{"help", "Print this message.", func(ctx context.Context, s *flag.FlagSet, args []string) error {
			printUsage(os.Stdout)
			return nil
		}},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Fprint(w, "SUBCOMMANDS: \n")

	for _, cmd := range subCommands {
		fmt.Fprintf(w, "%12s    %s\n", cmd.name, cmd.description)
	}

	fmt.Fprintf(w, "\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {
	// Use a minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, "ERROR:", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return &cli.ExitError{Code: 1, Message: "no subcommand was provided"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := args[0]
	for _, cmd := range subCommands {
		if cmd.name == name {
			set := flag.NewFlagSet(name, flag.ContinueOnError)
			return cmd.run(ctx, set, args[1:])
		}
	}

	printUsage(os.Stderr)
	return &cli.ExitError{Code: 1, Message: fmt.Sprintf("subcommand '%s' was not found", name)}
}
