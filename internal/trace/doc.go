// Package trace is the debug log of the compiler: pass boundaries, symbol
// table inserts and tree rewrites are emitted as events to a Tracer.
//
// # Usage
//
//	calc build -d prog.cal                  # everything to stderr
//	calc build --trace-level=phase prog.cal # pass boundaries only
//
// # Tracers
//
//   - Nop: zero-overhead tracer when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//
// # Levels and scopes
//
// LevelPhase emits driver and pass events, LevelDetail adds per-file
// events, LevelDebug adds node-level events (inserts, casts, rotations).
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "layout", 0)
//	defer span.End("")
package trace
