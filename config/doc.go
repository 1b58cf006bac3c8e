// Package config loads the service configuration from the environment and builds the
// infrastructure it describes: database connections, the event store, OpenTelemetry providers and loggers.
//
// A .env file in the working directory is loaded first when present; real environment variables win.
package config
