package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds configuration and services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract plain text and link tables from a folder of office files"`
	Review  ReviewCmd  `cmd:"" help:"Open every newly-seen link across a folder of link tables, once"`

	Config  string `short:"c" help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source string `arg:"" help:"Directory containing office files" type:"existingdir"`
	Output string `arg:"" help:"Directory to receive the artifact subdirectories" type:"path"`
}

// ReviewCmd is the "review" subcommand.
type ReviewCmd struct {
	Links  string `arg:"" help:"Directory containing Urls_* link tables" type:"existingdir"`
	Output string `arg:"" help:"Directory to receive confirmation pages" type:"path"`

	Pacing      string `help:"Delay between link opens, e.g. 500ms (overrides config)"`
	PromptDelay string `name:"prompt-delay" help:"Dwell after each confirmation page, e.g. 1s (overrides config)"`
}
