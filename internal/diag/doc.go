// Package diag defines the diagnostic model shared by the script reader,
// the semantic builders and the layout pass.
//
// Two shapes coexist:
//
//   - *Error is what semantic operations return. It carries a Code so
//     callers can test it with errors.Is against the Err* sentinels, a
//     message and the names involved.
//   - Diagnostic is what the driver collects in a Bag through a Reporter
//     once an error has reached a phase boundary. ReportErr converts the
//     former into the latter.
//
// Package diag does no rendering and no IO. Pretty output lives in
// internal/diagfmt; FormatShort is the stable one-line form used by golden
// tests.
package diag
