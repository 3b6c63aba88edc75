package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calltrace/internal/trace"
)

// setupEvents reads event-stream flags, merged over the toml config,
// and builds the sink. It returns the sink and a cleanup function.
func setupEvents(cmd *cobra.Command, cfg fileConfig) (trace.Sink, func(), error) {
	root := cmd.Root()

	output, err := root.PersistentFlags().GetString("events")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events flag: %w", err)
	}
	if output == "" {
		output = cfg.Events.Output
	}

	levelStr, err := root.PersistentFlags().GetString("events-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events-level flag: %w", err)
	}
	if !root.PersistentFlags().Changed("events-level") && cfg.Events.Level != "" {
		levelStr = cfg.Events.Level
	}

	modeStr, err := root.PersistentFlags().GetString("events-mode")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events-mode flag: %w", err)
	}
	if !root.PersistentFlags().Changed("events-mode") && cfg.Events.Mode != "" {
		modeStr = cfg.Events.Mode
	}

	formatStr, err := root.PersistentFlags().GetString("events-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events-format flag: %w", err)
	}
	if !root.PersistentFlags().Changed("events-format") && cfg.Events.Format != "" {
		formatStr = cfg.Events.Format
	}

	ringSize, err := root.PersistentFlags().GetInt("events-ring-size")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events-ring-size flag: %w", err)
	}
	if ringSize == 0 {
		ringSize, err = cfg.Events.ringSize()
		if err != nil {
			return nil, nil, err
		}
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid event level: %w", err)
	}

	// Turning on an output without a level implies the full stream.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelCalls
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid event mode: %w", err)
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid event format: %w", err)
	}

	sink, err := trace.NewSink(trace.SinkConfig{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create event sink: %w", err)
	}

	cleanup := func() {
		_ = sink.Close() //nolint:errcheck
	}
	return sink, cleanup, nil
}
