// The viewer shows the entries one query returns, oldest at the top and
// newest at the bottom, and re-runs the query on demand. It does not follow
// files as they grow.
//
// # Data Flow
//
//	Fetcher (catalog or HTTP client)
//	       │  fetchCmd, one per query, tagged with a sequence number
//	       ▼
//	fetchedMsg ──► state.Store.Update ──► Snapshot ──► displayLine rows
//
// A result whose sequence number is not the latest is dropped, so cycling
// sources quickly never shows a stale source's entries.
//
// # Keys
//
//   - r: re-run the current query
//   - s: cycle through all sources, then each source by name
//   - f: edit level, component and count filters
//   - /, n, N, esc: search rows by case-insensitive regexp
//   - T: cycle theme (saved to prefs)
//   - ?: help, q: quit
//
// Filters edited in the modal are saved to the prefs file along with the
// theme, and seed the query on the next start.
package ui
