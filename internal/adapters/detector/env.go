// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the log format of the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty forces human-readable colored output.
	ModePretty
	// ModeJSON forces structured JSON records.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode based on the environment.
// Structured output is chosen only for CI runs whose stderr is not a terminal.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if isCI && !isTTY {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "text", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty", "text":
		return ModePretty
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
