package main

import (
	"log"
	"os"

	"github.com/mirelk/jsonlens/internal/cli"
	"github.com/mirelk/jsonlens/internal/logging"
	"github.com/mirelk/jsonlens/internal/server"
	"github.com/mirelk/jsonlens/internal/transport"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}

	logger := logging.NewStdoutLogger("jsonlens")
	transport.RegisterDefaultBackends()

	s, err := server.NewServer(server.Config{
		ListenAddr:       args.ListenAddr,
		StorageRoot:      args.StorageRoot,
		TransportBackend: transport.Backend(args.Backend),
		Logger:           logger,
	})
	if err != nil {
		log.Fatalf("create server: %v", err)
	}
	defer s.Close()

	logger.Info("document server listening", logging.Field{Key: "addr", Value: args.ListenAddr})
	if err := s.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
