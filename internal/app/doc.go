// Package app is the composition root for logdesk.
//
// # Overview
//
// It turns a loaded config.Config into running components: the viewer over
// a local catalog or a remote server, and the HTTP server over a local
// catalog. Business logic lives in the domain packages (logentry, catalog,
// server, ui); this package only connects them.
//
// # Viewer Startup
//
//  1. Load viewer prefs (theme and last filters); failures fall back to defaults
//  2. Build the Fetcher: catalog.Catalog locally, client.Client with Remote
//  3. For a remote Fetcher, verify the server answers within 3 seconds
//  4. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> prefs.Load()         Theme and saved filters
//	       ├─────> NewFetcher()         Catalog or HTTP client
//	       ├─────> ensureAvailable()    Remote pre-flight check
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	┌──────────────┐
//	│   Serve()    │
//	└──────┬───────┘
//	       ├─────> NewCatalog()         Log directory reads
//	       └─────> server.Run()         HTTP until ctx is cancelled
//
// # Logging
//
// Every component gets a named hclog logger from the shared
// registry.Hclog, so the loggers a server lists and retunes through
// /log are the ones doing the work.
package app
