package cli

import (
	"flag"
	"fmt"
	"strings"
)

// CLIArgs are the command-line arguments that control the document server.
// Keep this small for now — add fields as modules need them.
type CLIArgs struct {
	// ListenAddr is the HTTP listen address of the document server.
	ListenAddr string

	// StorageRoot is where the preset catalog database is kept.
	StorageRoot string

	// Backend selects the transport backend ("nethttp" or "stub").
	Backend string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("jsonlens", flag.ContinueOnError)
	var (
		listen  = fs.String("listen", ":8080", "HTTP listen address for the document server")
		storage = fs.String("storage", "~/.config/jsonlens", "Directory for the preset catalog database")
		backend = fs.String("backend", "nethttp", "Transport backend: nethttp|stub")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(nil)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	if strings.TrimSpace(*listen) == "" {
		return nil, fmt.Errorf("missing -listen address")
	}

	return &CLIArgs{
		ListenAddr:  *listen,
		StorageRoot: *storage,
		Backend:     *backend,
		RawArgs:     args,
	}, nil
}
