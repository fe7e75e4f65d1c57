package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joverzhang/formulang/formulang"
	"github.com/joverzhang/formulang/semantic"
)

// readSource returns the formula text a subcommand should analyze: the
// first positional argument if given, otherwise the whole of stdin.
func readSource(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

// loadContext decodes a --context JSON file (the §6 context input shape:
// `properties` plus an optional `completion.preferred_limit`) into a
// Context. An empty path is not an error: it yields an empty context
// with just the built-in catalog.
func loadContext(path string) (semantic.Context, error) {
	if path == "" {
		return semantic.Context{Functions: semantic.Builtins()}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return semantic.Context{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return semantic.Context{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return formulang.DecodeContext(raw)
}

// loadCompletionConfig decodes the same --context JSON file's
// completion settings into a CompletionConfig, defaulting when path is
// empty or the file carries no completion object.
func loadCompletionConfig(path string) (formulang.CompletionConfig, error) {
	if path == "" {
		return formulang.DefaultCompletionConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return formulang.CompletionConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return formulang.CompletionConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return formulang.DecodeCompletionConfig(raw)
}
