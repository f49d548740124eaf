// Command stubapi starts a local imitation of the two demo APIs.
// Usage: go run ./cmd/stubapi [port]
// Default port: 9999
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/mirelk/jsonlens/internal/stubapi"
)

func main() {
	cfg := stubapi.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	srv := stubapi.NewStubAPI(cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
