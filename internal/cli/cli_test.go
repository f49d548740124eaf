package cli_test

import (
	"testing"

	"github.com/mirelk/jsonlens/internal/cli"
)

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", args.ListenAddr)
	}
	if args.Backend != "nethttp" {
		t.Errorf("Backend = %q", args.Backend)
	}
}

func TestParseArgs_Overrides(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs([]string{"-listen", ":9000", "-storage", "/tmp/jl", "-backend", "stub"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.ListenAddr != ":9000" || args.StorageRoot != "/tmp/jl" || args.Backend != "stub" {
		t.Errorf("unexpected args: %+v", args)
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	t.Parallel()

	if _, err := cli.ParseArgs([]string{"-nope"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
