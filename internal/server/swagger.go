package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title jsonlens API
// @version 0.1
// @description Interactive documentation for the jsonlens document API surface.
// @contact.name jsonlens Maintainers
// @contact.url https://github.com/mirelk/jsonlens
// @BasePath /
