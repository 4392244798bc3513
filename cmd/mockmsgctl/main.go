package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/matheus3301/mockmsg/internal/config"
	"github.com/matheus3301/mockmsg/internal/profile"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	cfg, err := config.LoadOrDefault(profile.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: config: %v\n", err)
		os.Exit(1)
	}

	name := profile.Resolve(*profileFlag, cfg)
	if err := profile.ValidateName(name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	c := &ctl{profile: name, cfg: cfg, out: os.Stdout, json: *jsonFlag}
	if err := c.run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: mockmsgctl [--profile <name>] [--json] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  export [FILE]     Write the stored data as JSON (stdout by default)")
	fmt.Fprintln(w, "  import FILE       Validate FILE and store it")
	fmt.Fprintln(w, "  validate FILE     Check FILE without storing it")
	fmt.Fprintln(w, "  reset             Delete the stored data (defaults on next start)")
	fmt.Fprintln(w, "  undo              Restore the previously stored data")
	fmt.Fprintln(w, "  history           List stored revisions")
	fmt.Fprintln(w, "  triggers          List fake triggers")
	fmt.Fprintln(w, "  profiles          List known profiles")
}
