// Package client provides an HTTP client for the logdesk server API.
//
// # Overview
//
// The client lets the CLI and the viewer query a running logdesk server
// instead of reading log files directly. Its Sources and Entries methods
// have the same signatures as catalog.Catalog, so either can back a reader.
//
// # Client Usage
//
//	c, err := client.New("127.0.0.1:8181")
//	if err != nil {
//		return err
//	}
//	entries, err := c.Entries(ctx, catalog.Query{Source: "main", Count: 50})
//
// # API Endpoints
//
//   - GET  /log/entries: entries for one source, or merged across all
//   - GET  /log/sources: source names
//   - GET  /log: registered loggers, optionally with levels
//   - POST /log: change one logger's level, or every logger's
//
// # Error Handling
//
// Non-2xx responses come back as *StatusError. The statuses the server uses
// for domain errors are mapped back to their sentinels, so errors.Is works
// the same for local and remote reads:
//
//   - 404 on /log/entries: catalog.ErrUnknownSource
//   - 400 on /log/entries: logentry.ErrInvalidLevel
//   - 404 on /log: registry.ErrUnknownLogger
//   - 400 on /log: registry.ErrInvalidLevel
//
// Timestamps decoded from JSON are reparsed on demand by Entry.Instant, so
// merged remote results order the same way as local ones.
package client
