// Package diagnostic provides structured, non-fatal findings reported
// while building a type graph.
//
// Key capabilities:
//   - Skipped (malformed) annotation lines
//   - Types left pending by an aborted crawl
//   - Combining findings from several analyses
package diagnostic
