package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calvin/internal/trace"
)

// setupTracing attaches a tracer built from s to the command context.
// The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	if s.traceLevel == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      s.traceLevel,
		Mode:       trace.ModeStream,
		OutputPath: s.traceOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
