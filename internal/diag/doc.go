// Package diag defines the diagnostic model shared by the IR reader and the
// constant-folding pass.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the textual IR reader and the fold pass.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration and
// bag collection per file lives in the driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers should use a diag.Reporter to decouple emission from storage. The
// fold pass reports through whatever Reporter it is handed; diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication and
// merging. The Bag is append-only during a run: the fold pass may report
// several diagnostics per function, in program order.
//
// Keep the data model deterministic: any new fields should avoid side effects
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
